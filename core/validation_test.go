package core

import (
	"errors"
	"testing"
)

func TestValidateChunking(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr error
	}{
		{name: "valid", size: 1000, overlap: 200, wantErr: nil},
		{name: "zero overlap", size: 100, overlap: 0, wantErr: nil},
		{name: "zero size", size: 0, overlap: 0, wantErr: ErrInvalidChunking},
		{name: "negative size", size: -5, overlap: 0, wantErr: ErrInvalidChunking},
		{name: "negative overlap", size: 100, overlap: -1, wantErr: ErrInvalidChunking},
		{name: "overlap equals size", size: 100, overlap: 100, wantErr: ErrInvalidChunking},
		{name: "overlap exceeds size", size: 100, overlap: 150, wantErr: ErrInvalidChunking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunking(tt.size, tt.overlap)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunking(%d, %d) = %v, want nil", tt.size, tt.overlap, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunking(%d, %d) = %v, want %v", tt.size, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTurn(t *testing.T) {
	tests := []struct {
		name    string
		turn    *Turn
		wantErr error
	}{
		{name: "valid user turn", turn: &Turn{Role: RoleUser, Contents: "hi"}, wantErr: nil},
		{name: "valid assistant turn", turn: &Turn{Role: RoleAssistant, Contents: "hello"}, wantErr: nil},
		{name: "empty contents", turn: &Turn{Role: RoleUser}, wantErr: ErrEmptyContent},
		{name: "invalid role", turn: &Turn{Role: Role(9), Contents: "x"}, wantErr: ErrInvalidRole},
		{name: "nil turn", turn: nil, wantErr: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTurn(tt.turn)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTurn() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTurn() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
