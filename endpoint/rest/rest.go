/*
 * Copyright 2023 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package rest exposes the stroke order operations over HTTP.
//
// Routes:
//
//	GET  /api/v1/engines
//	GET  /api/v1/characters/:char/strokeorder
//	POST /api/v1/strokeorder
//	POST /api/v1/strokeorder/error
//	GET  /api/v1/strokes/glyphs?order=H-S-P
//	POST /api/v1/reload
//
// Every route accepts an `engine` query parameter selecting an engine of the pool,
// Config.DefaultEngine when absent.
package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/rulego/strokeorder"
	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/engine"
	"github.com/rulego/strokeorder/utils/json"
	"github.com/rulego/strokeorder/utils/maps"
	"github.com/rulego/strokeorder/utils/runtime"
)

const (
	// HeaderRequestId carries the request id in responses, and in requests when the caller sets one.
	HeaderRequestId = "X-Request-Id"
	// ContentTypeJson json content type
	ContentTypeJson = "application/json"
	// maxBodySize bounds request bodies.
	maxBodySize = 1 << 20
)

// RequestMessage http请求消息
type RequestMessage struct {
	request *http.Request
	body    []byte
	Params  httprouter.Params
}

// Body reads and caches the request body.
func (r *RequestMessage) Body() []byte {
	if r.body == nil && r.request != nil && r.request.Body != nil {
		defer r.request.Body.Close()
		body, err := io.ReadAll(io.LimitReader(r.request.Body, maxBodySize))
		if err != nil {
			return nil
		}
		r.body = body
	}
	return r.body
}

func (r *RequestMessage) Headers() textproto.MIMEHeader {
	return textproto.MIMEHeader(r.request.Header)
}

// GetParam returns a path parameter, or a query parameter when no path parameter has that name.
func (r *RequestMessage) GetParam(key string) string {
	if v := r.Params.ByName(key); v != "" {
		return v
	}
	return r.request.URL.Query().Get(key)
}

func (r *RequestMessage) Request() *http.Request {
	return r.request
}

// ResponseMessage http响应消息
type ResponseMessage struct {
	response   http.ResponseWriter
	statusCode int
	body       []byte
}

func (r *ResponseMessage) Headers() textproto.MIMEHeader {
	return textproto.MIMEHeader(r.response.Header())
}

func (r *ResponseMessage) SetStatusCode(statusCode int) {
	r.statusCode = statusCode
}

func (r *ResponseMessage) SetBody(body []byte) {
	r.body = body
}

func (r *ResponseMessage) Body() []byte {
	return r.body
}

func (r *ResponseMessage) StatusCode() int {
	if r.statusCode == 0 {
		return http.StatusOK
	}
	return r.statusCode
}

// Exchange is one request/response pair.
type Exchange struct {
	RequestId string
	In        *RequestMessage
	Out       *ResponseMessage
}

// Context returns the request context carrying the request id.
func (e *Exchange) Context() context.Context {
	return engine.WithRequestId(e.In.request.Context(), e.RequestId)
}

// Interceptor runs before every handler. Returning false stops the request; the interceptor
// is expected to have set the response.
type Interceptor func(exchange *Exchange) bool

// Handler processes one route.
type Handler func(exchange *Exchange)

// Config Rest 服务配置
type Config struct {
	// Server 服务地址，例如 :9090
	Server      string
	CertFile    string
	CertKeyFile string
	// DefaultEngine is the engine used when a request names none.
	DefaultEngine string
	// ReadTimeout in seconds, 0 means no timeout.
	ReadTimeout int
	// AllowReload enables POST /api/v1/reload.
	AllowReload bool
}

// Rest 接收端端点
type Rest struct {
	// 配置
	Config Config
	// Engines is the engine pool requests are served from.
	Engines *strokeorder.Engines
	Logger  types.Logger
	// 路由器
	router       *httprouter.Router
	server       *http.Server
	interceptors []Interceptor
}

// New creates the endpoint and registers the stroke order routes.
func New(config Config, engines *strokeorder.Engines, logger types.Logger) *Rest {
	if config.DefaultEngine == "" {
		config.DefaultEngine = "default"
	}
	if engines == nil {
		engines = strokeorder.DefaultEngines
	}
	r := &Rest{Config: config, Engines: engines, Logger: types.NewLogger(logger), router: httprouter.New()}
	r.GET("/api/v1/engines", r.listEngines)
	r.GET("/api/v1/characters/:char/strokeorder", r.characterStrokeOrder)
	r.POST("/api/v1/strokeorder", r.strokeOrder)
	r.POST("/api/v1/strokeorder/error", r.strokeOrderError)
	r.GET("/api/v1/strokes/glyphs", r.strokeGlyphs)
	r.POST("/api/v1/reload", r.reload)
	return r
}

// NewFromConfiguration decodes the endpoint configuration from a key/value map, for example
// an ini section.
func NewFromConfiguration(configuration types.Configuration, engines *strokeorder.Engines, logger types.Logger) (*Rest, error) {
	var config Config
	if err := maps.Map2Struct(configuration, &config); err != nil {
		return nil, err
	}
	if config.Server == "" {
		return nil, errors.New("server can not be empty")
	}
	return New(config, engines, logger), nil
}

// AddInterceptors adds global interceptors, run in order before every handler.
func (r *Rest) AddInterceptors(interceptors ...Interceptor) *Rest {
	r.interceptors = append(r.interceptors, interceptors...)
	return r
}

// Handle registers a handler for method and path.
func (r *Rest) Handle(method, path string, handler Handler) *Rest {
	r.router.Handle(method, path, r.handler(handler))
	return r
}

func (r *Rest) GET(path string, handler Handler) *Rest {
	return r.Handle(http.MethodGet, path, handler)
}

func (r *Rest) POST(path string, handler Handler) *Rest {
	return r.Handle(http.MethodPost, path, handler)
}

func (r *Rest) Router() *httprouter.Router {
	return r.router
}

// Start listens on Config.Server and blocks until Stop is called.
func (r *Rest) Start() error {
	r.server = &http.Server{
		Addr:        r.Config.Server,
		Handler:     r.router,
		ReadTimeout: time.Duration(r.Config.ReadTimeout) * time.Second,
	}
	var err error
	if r.Config.CertKeyFile != "" && r.Config.CertFile != "" {
		r.Logger.Printf("starting server with TLS on %s", r.Config.Server)
		err = r.server.ListenAndServeTLS(r.Config.CertFile, r.Config.CertKeyFile)
	} else {
		r.Logger.Printf("starting server on %s", r.Config.Server)
		err = r.server.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts the server down.
func (r *Rest) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}

func (r *Rest) handler(handler Handler) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		exchange := &Exchange{
			RequestId: req.Header.Get(HeaderRequestId),
			In:        &RequestMessage{request: req, Params: params},
			Out:       &ResponseMessage{response: w},
		}
		if exchange.RequestId == "" {
			if id, err := uuid.NewV4(); err == nil {
				exchange.RequestId = id.String()
			}
		}
		defer func() {
			//捕捉异常
			if e := recover(); e != nil {
				r.Logger.Printf("rest handler err :%v stack:\n%s", e, runtime.Stack())
				r.writeError(exchange, http.StatusInternalServerError, fmt.Errorf("%v", e))
			}
			r.write(exchange)
		}()
		for _, interceptor := range r.interceptors {
			if !interceptor(exchange) {
				return
			}
		}
		handler(exchange)
	}
}

// engine returns the engine selected by the request, writing a 404 response when it does not exist.
func (r *Rest) engine(exchange *Exchange) (*strokeorder.Engine, bool) {
	id := exchange.In.GetParam("engine")
	if id == "" {
		id = r.Config.DefaultEngine
	}
	e, ok := r.Engines.Get(id)
	if !ok {
		r.writeError(exchange, http.StatusNotFound, fmt.Errorf("engine %s not found", id))
	}
	return e, ok
}

func (r *Rest) write(exchange *Exchange) {
	out := exchange.Out
	out.Headers().Set(HeaderRequestId, exchange.RequestId)
	if out.Headers().Get("Content-Type") == "" {
		out.Headers().Set("Content-Type", ContentTypeJson)
	}
	out.response.WriteHeader(out.StatusCode())
	if len(out.body) > 0 {
		_, _ = out.response.Write(out.body)
	}
}

func (r *Rest) writeJson(exchange *Exchange, statusCode int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		r.writeError(exchange, http.StatusInternalServerError, err)
		return
	}
	exchange.Out.SetStatusCode(statusCode)
	exchange.Out.SetBody(body)
}

func (r *Rest) writeError(exchange *Exchange, statusCode int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var tagged *types.Error
	if errors.As(err, &tagged) {
		resp.Kind = tagged.Kind.String()
		for _, order := range tagged.Orders {
			resp.Orders = append(resp.Orders, string(order))
		}
	}
	body, _ := json.Marshal(resp)
	exchange.Out.SetStatusCode(statusCode)
	exchange.Out.SetBody(body)
}

// statusOf maps an engine error to an http status code.
func statusOf(err error) int {
	switch types.KindOf(err) {
	case types.InvalidIds:
		return http.StatusBadRequest
	case types.NoInformation, types.Cycle:
		return http.StatusNotFound
	case types.Ambiguous:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
