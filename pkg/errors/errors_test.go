package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidAsset, "unsupported version %q", "1.0"),
			want: `INVALID_ASSET: unsupported version "1.0"`,
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeIORead, stderrors.New("eof"), "read model.glb"),
			want: "IO_READ: read model.glb: eof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeGraphDisposed, "node already disposed")

	if !Is(err, ErrCodeGraphDisposed) {
		t.Error("Is = false for matching code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeGraphDisposed) {
		t.Error("Is = true for non-structured error")
	}

	// Wrapped in a plain error chain, the code is still found.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeGraphDisposed) {
		t.Error("Is = false for wrapped structured error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeIOWrite, "boom")); got != ErrCodeIOWrite {
		t.Errorf("GetCode = %q, want IO_WRITE", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode = %q for plain error, want empty", got)
	}
}

func TestGetCodeOr(t *testing.T) {
	if got := GetCodeOr(New(ErrCodeIOWrite, "boom"), ErrCodeInvalidAsset); got != ErrCodeIOWrite {
		t.Errorf("GetCodeOr = %q, want IO_WRITE", got)
	}
	if got := GetCodeOr(stderrors.New("plain"), ErrCodeInvalidAsset); got != ErrCodeInvalidAsset {
		t.Errorf("GetCodeOr = %q for plain error, want fallback", got)
	}

	// Rewrapping with the fallback keeps the taxonomy intact.
	wrapped := Wrap(GetCodeOr(stderrors.New("plain"), ErrCodeInvalidAsset), stderrors.New("plain"), "buffer 0")
	if !Is(wrapped, ErrCodeInvalidAsset) {
		t.Error("rewrapped error lost its code")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "texture not found")); got != "texture not found" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestValidateAssetPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"Valid", "models/helmet.gltf", false},
		{"Empty", "", true},
		{"Traversal", "../secrets.bin", true},
		{"NullByte", "model\x00.gltf", true},
		{"TooLong", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetPath(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBufferURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantErr bool
	}{
		{"Empty", "", false},
		{"DataURI", "data:application/octet-stream;base64,AAAA", false},
		{"Relative", "buffers/mesh.bin", false},
		{"Remote", "https://example.com/mesh.bin", true},
		{"Traversal", "../../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBufferURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBufferURI(%q) = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
		})
	}
}
