package listing

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/sirupsen/logrus"
)

func TestMapErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"locked", ErrLocked, http.StatusConflict},
		{"not available", ErrNotAvailable, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapErr(tt.err, "L9")

			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v in the chain, got %v", tt.err, err)
			}
			if _, code, ok := weberr.Response(err); !ok || code != tt.code {
				t.Fatalf("expected status %d, got %d (ok=%t)", tt.code, code, ok)
			}

			fields, ok := weberr.Fields(err)
			if !ok {
				t.Fatal("expected log fields")
			}
			if diff := cmp.Diff(logrus.Fields{"listing_id": "L9"}, fields); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, _, ok := weberr.Response(mapErr(errors.New("boom"), "L9")); ok {
		t.Fatal("unexpected errors must stay internal")
	}
}
