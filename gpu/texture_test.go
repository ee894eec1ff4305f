package gpu

import (
	"errors"
	"testing"

	shimmer "github.com/abdusco/shimmer-sub001"
)

func TestCreateTextureValidation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr error
	}{
		{name: "valid", w: 64, h: 64, wantErr: nil},
		{name: "zero width", w: 0, h: 64, wantErr: ErrInvalidDimensions},
		{name: "negative height", w: 64, h: -1, wantErr: ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := CreateTexture(nil, TextureConfig{Width: tt.w, Height: tt.h})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if err == nil {
				if tex.Width() != tt.w || tex.Height() != tt.h {
					t.Errorf("size = %dx%d, want %dx%d", tex.Width(), tex.Height(), tt.w, tt.h)
				}
				if tex.SizeBytes() != uint64(tt.w*tt.h*4) {
					t.Errorf("SizeBytes = %d, want %d", tex.SizeBytes(), tt.w*tt.h*4)
				}
				tex.Close()
			}
		})
	}
}

func TestTextureUploadSizeMismatch(t *testing.T) {
	tex, err := CreateTexture(nil, TextureConfig{Width: 32, Height: 32})
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Close()

	err = tex.Upload(shimmer.NewPixmap(16, 16))
	if !errors.Is(err, ErrTextureSizeMismatch) {
		t.Errorf("error = %v, want ErrTextureSizeMismatch", err)
	}

	if err := tex.Upload(nil); !errors.Is(err, ErrNilPixmap) {
		t.Errorf("error = %v, want ErrNilPixmap", err)
	}
}

func TestTextureUseAfterClose(t *testing.T) {
	tex, err := CreateTexture(nil, TextureConfig{Width: 8, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	tex.Close()
	tex.Close() // idempotent

	if !tex.IsReleased() {
		t.Error("IsReleased = false after Close")
	}
	if err := tex.Upload(shimmer.NewPixmap(8, 8)); !errors.Is(err, ErrTextureReleased) {
		t.Errorf("Upload error = %v, want ErrTextureReleased", err)
	}
	if _, err := tex.Download(); !errors.Is(err, ErrTextureReleased) {
		t.Errorf("Download error = %v, want ErrTextureReleased", err)
	}
}

func TestCreateTextureFromPixmap(t *testing.T) {
	pm := shimmer.NewPixmap(16, 8)
	pm.Clear(shimmer.RGB(1, 0, 0))

	tex, err := CreateTextureFromPixmap(nil, pm, "test-tile", nil)
	if err != nil {
		t.Fatalf("CreateTextureFromPixmap: %v", err)
	}
	defer tex.Close()

	if tex.Width() != 16 || tex.Height() != 8 {
		t.Errorf("size = %dx%d, want 16x8", tex.Width(), tex.Height())
	}
	if tex.Label() != "test-tile" {
		t.Errorf("Label = %q, want test-tile", tex.Label())
	}
}
