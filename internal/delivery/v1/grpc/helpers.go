package grpc

import (
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/stock-backend/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

func GRPCErrorResponse(err error) error {
	switch {
	case e.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, e.ErrCategoryNotFound), errors.Is(err, e.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrReportsDisabled):
		return status.Error(codes.Unavailable, e.ErrReportsDisabled.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

// toStruct переводит вид в structpb.Struct через его JSON-представление,
// чтобы HTTP и gRPC отдавали одинаковые поля.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// topNFromRequest читает необязательное поле top_n. 0 — значение по умолчанию.
func topNFromRequest(req *structpb.Struct) (int, error) {
	const maxTopN = 100

	v, ok := req.GetFields()["top_n"]
	if !ok {
		return 0, nil
	}

	n := v.GetNumberValue()
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber || n != float64(int(n)) || n < 0 || n > maxTopN {
		return 0, e.Wrap("top_n", e.ErrStatusBadRequest)
	}
	return int(n), nil
}
