package app

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/sjalq/bitly-maker/internal/config"
	"github.com/sjalq/bitly-maker/pkg/httpclient/mocks"
	"go.uber.org/mock/gomock"
)

func TestNewProbeValidatesInputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	if _, err := NewProbe(nil, mocks.NewMockClient(ctrl), nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := NewProbe(&config.Config{}, nil, nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestProbeRunUsesConfiguredEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	resp := mocks.NewMockResponse(ctrl)
	resp.EXPECT().StatusCode().Return(http.StatusOK).AnyTimes()
	resp.EXPECT().Status().Return("200 OK").AnyTimes()
	resp.EXPECT().Header().Return(http.Header{}).AnyTimes()
	resp.EXPECT().Body().Return([]byte(`{"link":"https://bit.ly/abc"}`)).AnyTimes()

	client.EXPECT().
		Post(gomock.Any(), "http://localhost:8080/v4/shorten", gomock.Any(), []byte(`{"long_url":"https://example.com/a"}`)).
		Return(resp, nil).
		Times(1)

	cfg := &config.Config{
		EndpointScheme: "http",
		EndpointHost:   "localhost",
		EndpointPort:   8080,
		EndpointPath:   "/v4/shorten",
		APIKey:         "key",
		LongURL:        "https://example.com/a",
	}

	var out, errOut bytes.Buffer
	p, err := NewProbe(cfg, client, &out, &errOut, nil)
	if err != nil {
		t.Fatalf("NewProbe: %v", err)
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("Short link: https://bit.ly/abc")) {
		t.Fatalf("unexpected report:\n%s", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected stderr output %q", errOut.String())
	}
}
