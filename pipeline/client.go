// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/metrics"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
	"github.com/xmidt-org/statusui/xhttp"
	"go.uber.org/zap"
)

const (
	// DefaultClientTimeout bounds each call to a remote engine
	DefaultClientTimeout = 30 * time.Second

	statusTreePath    = "status_tree"
	pipelineNamesPath = "pipeline_names"
	rootListPath      = "root_list"

	rootPipelineIDParameter = "root_pipeline_id"
	classPathParameter      = "class_path"
	cursorParameter         = "cursor"

	// maxErrorBody limits how much of a failed response is read
	maxErrorBody = 64 * 1024
)

var jsonHandle = &codec.JsonHandle{
	BasicHandle: codec.BasicHandle{
		TypeInfos: codec.NewTypeInfos([]string{"json"}),
	},
}

// ClientOptions configures a Client
type ClientOptions struct {
	// URL is the base URL of the remote engine's query API
	URL string `json:"url"`

	// Timeout bounds each request.  DefaultClientTimeout is used if unset.
	Timeout time.Duration `json:"timeout"`

	// Retries is the number of times a transient failure is retried.  Zero disables retries.
	Retries int `json:"retries"`

	// RetryInterval is the pause between retries
	RetryInterval time.Duration `json:"retryInterval"`

	// RetryCounter is incremented for each retry.  Optional.
	RetryCounter metrics.Counter `json:"-"`

	// HTTPClient is the transport to use.  If unset, an http.Client with Timeout is created.
	HTTPClient kithttp.HTTPClient `json:"-"`

	Logger *zap.Logger `json:"-"`
}

func (o *ClientOptions) httpClient() kithttp.HTTPClient {
	client := o.HTTPClient
	if client == nil {
		timeout := o.Timeout
		if timeout <= 0 {
			timeout = DefaultClientTimeout
		}

		client = &http.Client{Timeout: timeout}
	}

	return xhttp.TransactorFunc(
		xhttp.RetryTransactor(
			xhttp.RetryOptions{
				Logger:   o.Logger,
				Retries:  o.Retries,
				Interval: o.RetryInterval,
				Counter:  o.RetryCounter,
			},
			client.Do,
		),
	)
}

// Client is an Engine that queries a remote engine over HTTP
type Client struct {
	statusTree    endpoint.Endpoint
	pipelineNames endpoint.Endpoint
	rootList      endpoint.Endpoint
}

var _ Engine = (*Client)(nil)

// NewClient creates a remote Engine from the given options
func NewClient(o ClientOptions) (*Client, error) {
	if len(o.URL) == 0 {
		return nil, errors.New("an engine URL is required")
	}

	base, err := url.Parse(o.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid engine URL")
	}

	transport := kithttp.SetClient(o.httpClient())
	return &Client{
		statusTree: kithttp.NewClient(
			http.MethodGet,
			base.JoinPath(statusTreePath),
			encodeStatusTreeRequest,
			decodeResponse(func() interface{} { return new(StatusTree) }),
			transport,
		).Endpoint(),
		pipelineNames: kithttp.NewClient(
			http.MethodGet,
			base.JoinPath(pipelineNamesPath),
			encodeNoRequest,
			decodeResponse(func() interface{} { return new([]string) }),
			transport,
		).Endpoint(),
		rootList: kithttp.NewClient(
			http.MethodGet,
			base.JoinPath(rootListPath),
			encodeRootListRequest,
			decodeResponse(func() interface{} { return new(RootList) }),
			transport,
		).Endpoint(),
	}, nil
}

type rootListRequest struct {
	classPath string
	cursor    string
}

func encodeNoRequest(context.Context, *http.Request, interface{}) error {
	return nil
}

func encodeStatusTreeRequest(_ context.Context, request *http.Request, value interface{}) error {
	query := request.URL.Query()
	query.Set(rootPipelineIDParameter, value.(ID).String())
	request.URL.RawQuery = query.Encode()
	return nil
}

func encodeRootListRequest(_ context.Context, request *http.Request, value interface{}) error {
	var (
		rlr   = value.(rootListRequest)
		query = request.URL.Query()
	)

	if len(rlr.classPath) > 0 {
		query.Set(classPathParameter, rlr.classPath)
	}

	if len(rlr.cursor) > 0 {
		query.Set(cursorParameter, rlr.cursor)
	}

	request.URL.RawQuery = query.Encode()
	return nil
}

// errorBody is the failure payload a remote engine may send
type errorBody struct {
	Class   string `json:"error_class"`
	Message string `json:"error_message"`
}

func decodeEngineError(response *http.Response) error {
	engineError := &EngineError{
		Code:    response.StatusCode,
		Message: http.StatusText(response.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
	if err == nil && len(body) > 0 {
		var eb errorBody
		if codec.NewDecoderBytes(body, jsonHandle).Decode(&eb) == nil {
			engineError.Class = eb.Class
			if len(eb.Message) > 0 {
				engineError.Message = eb.Message
			}
		}
	}

	return errors.WithStack(engineError)
}

func decodeResponse(factory func() interface{}) kithttp.DecodeResponseFunc {
	return func(_ context.Context, response *http.Response) (interface{}, error) {
		if response.StatusCode < 200 || response.StatusCode > 299 {
			return nil, decodeEngineError(response)
		}

		value := factory()
		if err := codec.NewDecoder(response.Body, jsonHandle).Decode(value); err != nil {
			return nil, errors.Wrap(err, "unable to decode engine response")
		}

		return value, nil
	}
}

func (c *Client) StatusTree(ctx context.Context, root ID) (*StatusTree, error) {
	result, err := c.statusTree(ctx, root)
	if err != nil {
		return nil, err
	}

	return result.(*StatusTree), nil
}

func (c *Client) PipelineNames(ctx context.Context) ([]string, error) {
	result, err := c.pipelineNames(ctx, nil)
	if err != nil {
		return nil, err
	}

	return *result.(*[]string), nil
}

func (c *Client) RootList(ctx context.Context, classPath, cursor string) (*RootList, error) {
	result, err := c.rootList(ctx, rootListRequest{classPath: classPath, cursor: cursor})
	if err != nil {
		return nil, err
	}

	return result.(*RootList), nil
}
