package grpc

import (
	"context"

	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	DashboardServiceName        = "inventory.v1.DashboardService"
	GetSummaryFullMethod        = "/" + DashboardServiceName + "/GetSummary"
	ExportReportFullMethod      = "/" + DashboardServiceName + "/ExportReport"
	dashboardServiceDescription = "inventory/v1/dashboard.proto"
)

// DashboardServiceServer — сводка склада для внутренних потребителей.
// Запрос и ответ — google.protobuf.Struct, поля ответа совпадают с JSON из HTTP API.
type DashboardServiceServer interface {
	GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ExportReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var DashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: DashboardServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSummary", Handler: unaryHandler(GetSummaryFullMethod, DashboardServiceServer.GetSummary)},
		{MethodName: "ExportReport", Handler: unaryHandler(ExportReportFullMethod, DashboardServiceServer.ExportReport)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: dashboardServiceDescription,
}

func unaryHandler(
	fullMethod string,
	call func(DashboardServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DashboardServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DashboardServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type DashboardService struct {
	dashUC usecase.DashboardUC
	logger logger.Logger
}

func NewDashboardService(dashUC usecase.DashboardUC, logger logger.Logger) *DashboardService {
	return &DashboardService{dashUC: dashUC, logger: logger}
}

func (g *DashboardService) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.GetSummary"

	topN, err := topNFromRequest(req)
	if err != nil {
		g.logger.Warnf("%s: %s", op, err.Error())
		return nil, GRPCErrorResponse(err)
	}

	res, err := toStruct(g.dashUC.Dashboard(ctx, topN))
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

func (g *DashboardService) ExportReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.ExportReport"

	topN, err := topNFromRequest(req)
	if err != nil {
		g.logger.Warnf("%s: %s", op, err.Error())
		return nil, GRPCErrorResponse(err)
	}

	report, err := g.dashUC.ExportReport(ctx, topN)
	if err != nil {
		if e.IsClientError(err) {
			g.logger.Warnf("%s: %s", op, err.Error())
		} else {
			g.logger.Errorf(e.Wrap(op, err), "%s", op)
		}
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	res, err := toStruct(report)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

// DashboardClient — клиент к DashboardService поверх произвольного соединения.
type DashboardClient struct {
	cc grpc.ClientConnInterface
}

func NewDashboardClient(cc grpc.ClientConnInterface) *DashboardClient {
	return &DashboardClient{cc: cc}
}

func (c *DashboardClient) GetSummary(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetSummaryFullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DashboardClient) ExportReport(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ExportReportFullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
