package procpb

import (
	"context"

	"google.golang.org/grpc"
)

// Full method names, as they would appear on the wire path.
const (
	ProcessServiceExecFullMethodName      = "/procpb.ProcessService/Exec"
	ProcessServiceGetStatusFullMethodName = "/procpb.ProcessService/GetStatus"
	ProcessServiceGetLogsFullMethodName   = "/procpb.ProcessService/GetLogs"
	ProcessServiceStopFullMethodName      = "/procpb.ProcessService/Stop"
)

// ProcessServiceClient is the client API for ProcessService, matching
// spec.md §6's four-operation RPC surface.
type ProcessServiceClient interface {
	Exec(ctx context.Context, in *ExecRequest, opts ...grpc.CallOption) (*ExecResponse, error)
	GetStatus(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	GetLogs(ctx context.Context, in *LogsRequest, opts ...grpc.CallOption) (ProcessService_GetLogsClient, error)
	Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*StopResponse, error)
}

type processServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewProcessServiceClient wraps a ClientConn in the typed ProcessService API.
func NewProcessServiceClient(cc grpc.ClientConnInterface) ProcessServiceClient {
	return &processServiceClient{cc}
}

func (c *processServiceClient) Exec(ctx context.Context, in *ExecRequest, opts ...grpc.CallOption) (*ExecResponse, error) {
	out := new(ExecResponse)
	if err := c.cc.Invoke(ctx, ProcessServiceExecFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *processServiceClient) GetStatus(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	if err := c.cc.Invoke(ctx, ProcessServiceGetStatusFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *processServiceClient) Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*StopResponse, error) {
	out := new(StopResponse)
	if err := c.cc.Invoke(ctx, ProcessServiceStopFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *processServiceClient) GetLogs(ctx context.Context, in *LogsRequest, opts ...grpc.CallOption) (ProcessService_GetLogsClient, error) {
	stream, err := c.cc.NewStream(ctx, &ProcessService_ServiceDesc.Streams[0], ProcessServiceGetLogsFullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &processServiceGetLogsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ProcessService_GetLogsClient is the receive-only half of the GetLogs
// server-streaming RPC, as seen by the client.
type ProcessService_GetLogsClient interface {
	Recv() (*LogsResponse, error)
	grpc.ClientStream
}

type processServiceGetLogsClient struct {
	grpc.ClientStream
}

func (x *processServiceGetLogsClient) Recv() (*LogsResponse, error) {
	m := new(LogsResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ProcessServiceServer is the server API for ProcessService.
type ProcessServiceServer interface {
	Exec(context.Context, *ExecRequest) (*ExecResponse, error)
	GetStatus(context.Context, *StatusRequest) (*StatusResponse, error)
	GetLogs(*LogsRequest, ProcessService_GetLogsServer) error
	Stop(context.Context, *StopRequest) (*StopResponse, error)
}

// ProcessService_GetLogsServer is the send-only half of the GetLogs
// server-streaming RPC, as seen by the server.
type ProcessService_GetLogsServer interface {
	Send(*LogsResponse) error
	grpc.ServerStream
}

type processServiceGetLogsServer struct {
	grpc.ServerStream
}

func (x *processServiceGetLogsServer) Send(m *LogsResponse) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterProcessServiceServer registers srv with s.
func RegisterProcessServiceServer(s grpc.ServiceRegistrar, srv ProcessServiceServer) {
	s.RegisterService(&ProcessService_ServiceDesc, srv)
}

func _ProcessService_Exec_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ExecRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProcessServiceServer).Exec(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProcessServiceExecFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProcessServiceServer).Exec(ctx, req.(*ExecRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProcessService_GetStatus_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProcessServiceServer).GetStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProcessServiceGetStatusFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProcessServiceServer).GetStatus(ctx, req.(*StatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProcessService_Stop_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StopRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProcessServiceServer).Stop(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProcessServiceStopFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProcessServiceServer).Stop(ctx, req.(*StopRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProcessService_GetLogs_Handler(srv any, stream grpc.ServerStream) error {
	m := new(LogsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ProcessServiceServer).GetLogs(m, &processServiceGetLogsServer{stream})
}

// ProcessService_ServiceDesc is the grpc.ServiceDesc for ProcessService.
var ProcessService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "procpb.ProcessService",
	HandlerType: (*ProcessServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Exec", Handler: _ProcessService_Exec_Handler},
		{MethodName: "GetStatus", Handler: _ProcessService_GetStatus_Handler},
		{MethodName: "Stop", Handler: _ProcessService_Stop_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetLogs",
			Handler:       _ProcessService_GetLogs_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "procpb/process_service.proto",
}
