package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// ReportServiceName is the fully-qualified name of the ReportService.
const ReportServiceName = "splitledger.v1.ReportService"

// Procedure paths, as sent on the wire.
const (
	ReportServiceListSummariesProcedure = "/splitledger.v1.ReportService/ListSummaries"
	ReportServiceGetDashboardProcedure  = "/splitledger.v1.ReportService/GetDashboard"
)

// ReportServiceHandler serves read-only views derived from the ledger.
type ReportServiceHandler interface {
	ListSummaries(context.Context, *connect.Request[api.ListSummariesRequest]) (*connect.Response[api.ListSummariesResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
}

// NewReportServiceHandler builds an HTTP handler for svc. It returns the path to
// mount it on and the handler. The JSON codec is always installed.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec())}, opts...)
	listSummariesHandler := connect.NewUnaryHandler(ReportServiceListSummariesProcedure, svc.ListSummaries, opts...)
	getDashboardHandler := connect.NewUnaryHandler(ReportServiceGetDashboardProcedure, svc.GetDashboard, opts...)
	return "/" + ReportServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReportServiceListSummariesProcedure:
			listSummariesHandler.ServeHTTP(w, r)
		case ReportServiceGetDashboardProcedure:
			getDashboardHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ReportServiceClient is a client for the ReportService.
type ReportServiceClient interface {
	ListSummaries(context.Context, *connect.Request[api.ListSummariesRequest]) (*connect.Response[api.ListSummariesResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
}

// NewReportServiceClient creates a client for the ReportService at baseURL
// (for example, http://localhost:8080).
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec())}, opts...)
	return &reportServiceClient{
		listSummaries: connect.NewClient[api.ListSummariesRequest, api.ListSummariesResponse](httpClient, baseURL+ReportServiceListSummariesProcedure, opts...),
		getDashboard:  connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](httpClient, baseURL+ReportServiceGetDashboardProcedure, opts...),
	}
}

type reportServiceClient struct {
	listSummaries *connect.Client[api.ListSummariesRequest, api.ListSummariesResponse]
	getDashboard  *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
}

func (c *reportServiceClient) ListSummaries(ctx context.Context, req *connect.Request[api.ListSummariesRequest]) (*connect.Response[api.ListSummariesResponse], error) {
	return c.listSummaries.CallUnary(ctx, req)
}

func (c *reportServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}
