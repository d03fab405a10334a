package accountapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "accounts.v1.Account"

const (
	RegisterMethod           = "/" + ServiceName + "/Register"
	VerifyEmailMethod        = "/" + ServiceName + "/VerifyEmail"
	LoginMethod              = "/" + ServiceName + "/Login"
	ResendVerificationMethod = "/" + ServiceName + "/ResendVerification"
	LogoutMethod             = "/" + ServiceName + "/Logout"
	ProfileMethod            = "/" + ServiceName + "/Profile"
)

// AccountServer is the server API of the account service.
type AccountServer interface {
	Register(context.Context, *RegisterRequest) (*SessionResponse, error)
	VerifyEmail(context.Context, *VerifyEmailRequest) (*MessageResponse, error)
	Login(context.Context, *LoginRequest) (*SessionResponse, error)
	ResendVerification(context.Context, *ResendVerificationRequest) (*MessageResponse, error)
	Logout(context.Context, *LogoutRequest) (*MessageResponse, error)
	Profile(context.Context, *ProfileRequest) (*AccountResponse, error)
}

// UnimplementedAccountServer can be embedded to have forward compatible
// implementations.
type UnimplementedAccountServer struct{}

func (UnimplementedAccountServer) Register(context.Context, *RegisterRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedAccountServer) VerifyEmail(context.Context, *VerifyEmailRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyEmail not implemented")
}

func (UnimplementedAccountServer) Login(context.Context, *LoginRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAccountServer) ResendVerification(context.Context, *ResendVerificationRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResendVerification not implemented")
}

func (UnimplementedAccountServer) Logout(context.Context, *LogoutRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}

func (UnimplementedAccountServer) Profile(context.Context, *ProfileRequest) (*AccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Profile not implemented")
}

// RegisterAccountServer registers srv on s.
func RegisterAccountServer(s grpc.ServiceRegistrar, srv AccountServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unaryHandler adapts a typed method to the grpc.MethodHandler shape.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(AccountServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the grpc.ServiceDesc of the account service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(RegisterMethod, AccountServer.Register)},
		{MethodName: "VerifyEmail", Handler: unaryHandler(VerifyEmailMethod, AccountServer.VerifyEmail)},
		{MethodName: "Login", Handler: unaryHandler(LoginMethod, AccountServer.Login)},
		{MethodName: "ResendVerification", Handler: unaryHandler(ResendVerificationMethod, AccountServer.ResendVerification)},
		{MethodName: "Logout", Handler: unaryHandler(LogoutMethod, AccountServer.Logout)},
		{MethodName: "Profile", Handler: unaryHandler(ProfileMethod, AccountServer.Profile)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "accounts/v1/account",
}
