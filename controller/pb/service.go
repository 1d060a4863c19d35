package pb

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "pb.Controller"

// ControllerClient is the client API for the controller service.
type ControllerClient interface {
	Pop(ctx context.Context, in *PopRequest, opts ...grpc.CallOption) (*PopResponse, error)
	Lock(ctx context.Context, in *LockRequest, opts ...grpc.CallOption) (*LockResponse, error)
	Unlock(ctx context.Context, in *UnlockRequest, opts ...grpc.CallOption) (*UnlockResponse, error)
	Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error)
	Start(ctx context.Context, in *StartRequest, opts ...grpc.CallOption) (*StartResponse, error)
	Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	AddGameFrame(ctx context.Context, in *AddGameFrameRequest, opts ...grpc.CallOption) (*AddGameFrameResponse, error)
	ListGameFrames(ctx context.Context, in *ListGameFramesRequest, opts ...grpc.CallOption) (*ListGameFramesResponse, error)
	EndGame(ctx context.Context, in *EndGameRequest, opts ...grpc.CallOption) (*EndGameResponse, error)
	PushInput(ctx context.Context, in *PushInputRequest, opts ...grpc.CallOption) (*PushInputResponse, error)
	PopInputs(ctx context.Context, in *PopInputsRequest, opts ...grpc.CallOption) (*PopInputsResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

// ControllerServer is the server API for the controller service.
type ControllerServer interface {
	Pop(context.Context, *PopRequest) (*PopResponse, error)
	Lock(context.Context, *LockRequest) (*LockResponse, error)
	Unlock(context.Context, *UnlockRequest) (*UnlockResponse, error)
	Create(context.Context, *CreateRequest) (*CreateResponse, error)
	Start(context.Context, *StartRequest) (*StartResponse, error)
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
	AddGameFrame(context.Context, *AddGameFrameRequest) (*AddGameFrameResponse, error)
	ListGameFrames(context.Context, *ListGameFramesRequest) (*ListGameFramesResponse, error)
	EndGame(context.Context, *EndGameRequest) (*EndGameResponse, error)
	PushInput(context.Context, *PushInputRequest) (*PushInputResponse, error)
	PopInputs(context.Context, *PopInputsRequest) (*PopInputsResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

type controllerClient struct {
	cc *grpc.ClientConn
}

// NewControllerClient wraps a client connection with the controller API.
func NewControllerClient(cc *grpc.ClientConn) ControllerClient {
	return &controllerClient{cc}
}

func (c *controllerClient) invoke(ctx context.Context, method string, in, out interface{}, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...)
}

func (c *controllerClient) Pop(ctx context.Context, in *PopRequest, opts ...grpc.CallOption) (*PopResponse, error) {
	out := new(PopResponse)
	if err := c.invoke(ctx, "Pop", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) Lock(ctx context.Context, in *LockRequest, opts ...grpc.CallOption) (*LockResponse, error) {
	out := new(LockResponse)
	if err := c.invoke(ctx, "Lock", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) Unlock(ctx context.Context, in *UnlockRequest, opts ...grpc.CallOption) (*UnlockResponse, error) {
	out := new(UnlockResponse)
	if err := c.invoke(ctx, "Unlock", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error) {
	out := new(CreateResponse)
	if err := c.invoke(ctx, "Create", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) Start(ctx context.Context, in *StartRequest, opts ...grpc.CallOption) (*StartResponse, error) {
	out := new(StartResponse)
	if err := c.invoke(ctx, "Start", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	if err := c.invoke(ctx, "Status", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) AddGameFrame(ctx context.Context, in *AddGameFrameRequest, opts ...grpc.CallOption) (*AddGameFrameResponse, error) {
	out := new(AddGameFrameResponse)
	if err := c.invoke(ctx, "AddGameFrame", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) ListGameFrames(ctx context.Context, in *ListGameFramesRequest, opts ...grpc.CallOption) (*ListGameFramesResponse, error) {
	out := new(ListGameFramesResponse)
	if err := c.invoke(ctx, "ListGameFrames", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) EndGame(ctx context.Context, in *EndGameRequest, opts ...grpc.CallOption) (*EndGameResponse, error) {
	out := new(EndGameResponse)
	if err := c.invoke(ctx, "EndGame", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) PushInput(ctx context.Context, in *PushInputRequest, opts ...grpc.CallOption) (*PushInputResponse, error) {
	out := new(PushInputResponse)
	if err := c.invoke(ctx, "PushInput", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) PopInputs(ctx context.Context, in *PopInputsRequest, opts ...grpc.CallOption) (*PopInputsResponse, error) {
	out := new(PopInputsResponse)
	if err := c.invoke(ctx, "PopInputs", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, "Ping", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterControllerServer registers srv on the grpc server s.
func RegisterControllerServer(s *grpc.Server, srv ControllerServer) {
	s.RegisterService(&controllerServiceDesc, srv)
}

// unaryHandler adapts a typed controller method to a grpc.MethodDesc handler.
func unaryHandler(
	method string,
	newReq func() interface{},
	call func(ControllerServer, context.Context, interface{}) (interface{}, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ControllerServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(ControllerServer), ctx, req)
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var controllerServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ControllerServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Pop", func() interface{} { return new(PopRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.Pop(ctx, in.(*PopRequest))
			}),
		unaryHandler("Lock", func() interface{} { return new(LockRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.Lock(ctx, in.(*LockRequest))
			}),
		unaryHandler("Unlock", func() interface{} { return new(UnlockRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.Unlock(ctx, in.(*UnlockRequest))
			}),
		unaryHandler("Create", func() interface{} { return new(CreateRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.Create(ctx, in.(*CreateRequest))
			}),
		unaryHandler("Start", func() interface{} { return new(StartRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.Start(ctx, in.(*StartRequest))
			}),
		unaryHandler("Status", func() interface{} { return new(StatusRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.Status(ctx, in.(*StatusRequest))
			}),
		unaryHandler("AddGameFrame", func() interface{} { return new(AddGameFrameRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.AddGameFrame(ctx, in.(*AddGameFrameRequest))
			}),
		unaryHandler("ListGameFrames", func() interface{} { return new(ListGameFramesRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.ListGameFrames(ctx, in.(*ListGameFramesRequest))
			}),
		unaryHandler("EndGame", func() interface{} { return new(EndGameRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.EndGame(ctx, in.(*EndGameRequest))
			}),
		unaryHandler("PushInput", func() interface{} { return new(PushInputRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.PushInput(ctx, in.(*PushInputRequest))
			}),
		unaryHandler("PopInputs", func() interface{} { return new(PopInputsRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.PopInputs(ctx, in.(*PopInputsRequest))
			}),
		unaryHandler("Ping", func() interface{} { return new(PingRequest) },
			func(s ControllerServer, ctx context.Context, in interface{}) (interface{}, error) {
				return s.Ping(ctx, in.(*PingRequest))
			}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "controller.proto",
}
