package orderapi

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// OrderServiceName is the fully-qualified name of the OrderService.
	OrderServiceName = "orderlines.v1.OrderService"
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "orderlines.v1.AuthService"
)

// Procedure paths.
const (
	OrderServiceCreateOrderProcedure = "/" + OrderServiceName + "/CreateOrder"
	OrderServiceAddItemProcedure     = "/" + OrderServiceName + "/AddItem"
	OrderServiceGetItemsProcedure    = "/" + OrderServiceName + "/GetItems"
	OrderServiceListOrdersProcedure  = "/" + OrderServiceName + "/ListOrders"

	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"
)

// OrderServiceHandler is implemented by the order service.
type OrderServiceHandler interface {
	CreateOrder(context.Context, *connect.Request[CreateOrderRequest]) (*connect.Response[CreateOrderResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error)
	GetItems(context.Context, *connect.Request[GetItemsRequest]) (*connect.Response[GetItemsResponse], error)
	ListOrders(context.Context, *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error)
}

// AuthServiceHandler is implemented by the auth service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
}

// NewOrderServiceHandler builds an HTTP handler for the order service and
// returns the path to mount it on.
func NewOrderServiceHandler(svc OrderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	return "/" + OrderServiceName + "/", route(map[string]http.Handler{
		OrderServiceCreateOrderProcedure: connect.NewUnaryHandler(OrderServiceCreateOrderProcedure, svc.CreateOrder, opts...),
		OrderServiceAddItemProcedure:     connect.NewUnaryHandler(OrderServiceAddItemProcedure, svc.AddItem, opts...),
		OrderServiceGetItemsProcedure:    connect.NewUnaryHandler(OrderServiceGetItemsProcedure, svc.GetItems, opts...),
		OrderServiceListOrdersProcedure:  connect.NewUnaryHandler(OrderServiceListOrdersProcedure, svc.ListOrders, opts...),
	})
}

// NewAuthServiceHandler builds an HTTP handler for the auth service and
// returns the path to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	return "/" + AuthServiceName + "/", route(map[string]http.Handler{
		AuthServiceRegisterProcedure:       connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:          connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceGetCurrentUserProcedure: connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...),
	})
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// OrderServiceClient calls the order service.
type OrderServiceClient struct {
	createOrder *connect.Client[CreateOrderRequest, CreateOrderResponse]
	addItem     *connect.Client[AddItemRequest, AddItemResponse]
	getItems    *connect.Client[GetItemsRequest, GetItemsResponse]
	listOrders  *connect.Client[ListOrdersRequest, ListOrdersResponse]
}

// NewOrderServiceClient creates a client for the order service at baseURL.
func NewOrderServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *OrderServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &OrderServiceClient{
		createOrder: connect.NewClient[CreateOrderRequest, CreateOrderResponse](httpClient, baseURL+OrderServiceCreateOrderProcedure, opts...),
		addItem:     connect.NewClient[AddItemRequest, AddItemResponse](httpClient, baseURL+OrderServiceAddItemProcedure, opts...),
		getItems:    connect.NewClient[GetItemsRequest, GetItemsResponse](httpClient, baseURL+OrderServiceGetItemsProcedure, opts...),
		listOrders:  connect.NewClient[ListOrdersRequest, ListOrdersResponse](httpClient, baseURL+OrderServiceListOrdersProcedure, opts...),
	}
}

func (c *OrderServiceClient) CreateOrder(ctx context.Context, req *connect.Request[CreateOrderRequest]) (*connect.Response[CreateOrderResponse], error) {
	return c.createOrder.CallUnary(ctx, req)
}

func (c *OrderServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *OrderServiceClient) GetItems(ctx context.Context, req *connect.Request[GetItemsRequest]) (*connect.Response[GetItemsResponse], error) {
	return c.getItems.CallUnary(ctx, req)
}

func (c *OrderServiceClient) ListOrders(ctx context.Context, req *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error) {
	return c.listOrders.CallUnary(ctx, req)
}

// AuthServiceClient calls the auth service.
type AuthServiceClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewAuthServiceClient creates a client for the auth service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &AuthServiceClient{
		register:       connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}
