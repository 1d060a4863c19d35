package worker

import (
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_logrus "github.com/grpc-ecosystem/go-grpc-middleware/logging/logrus"
	grpc_retry "github.com/grpc-ecosystem/go-grpc-middleware/retry"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/ormenio/engine/controller/pb"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

// Dial connects to the controller at address. Calls are retried while the
// controller is unavailable, instrumented and logged at debug level. Extra
// interceptors go in with grpc.WithChainUnaryInterceptor and run after these.
func Dial(address string, opts ...grpc.DialOption) (pb.ControllerClient, error) {
	entry := log.WithField("component", "worker")
	opts = append([]grpc.DialOption{
		grpc.WithUnaryInterceptor(grpc_middleware.ChainUnaryClient(
			grpc_retry.UnaryClientInterceptor(
				grpc_retry.WithMax(3),
				grpc_retry.WithCodes(codes.Unavailable),
			),
			grpc_prometheus.UnaryClientInterceptor,
			grpc_logrus.UnaryClientInterceptor(entry, grpc_logrus.WithLevels(clientLogLevel)),
		)),
	}, opts...)
	return pb.Dial(address, opts...)
}

// clientLogLevel keeps polling noise out of the logs, workers see NotFound
// and ResourceExhausted all the time.
func clientLogLevel(code codes.Code) log.Level {
	switch code {
	case codes.OK, codes.NotFound, codes.ResourceExhausted:
		return log.DebugLevel
	case codes.Canceled, codes.DeadlineExceeded:
		return log.InfoLevel
	}
	return log.WarnLevel
}
