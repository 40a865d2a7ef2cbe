package deploy

import (
	"context"
	"errors"
	"testing"
)

// TestLocatorExists 覆盖精确匹配、大小写敏感与分页跟随。
func TestLocatorExists(t *testing.T) {
	tests := []struct {
		name      string
		functions []string
		pageSize  int
		target    string
		want      bool
	}{
		{
			name:      "present single page",
			functions: []string{"a", "b", "target"},
			target:    "target",
			want:      true,
		},
		{
			name:      "absent",
			functions: []string{"a", "b"},
			target:    "target",
			want:      false,
		},
		{
			name:      "case sensitive",
			functions: []string{"Target"},
			target:    "target",
			want:      false,
		},
		{
			name:      "found on later page",
			functions: []string{"a", "b", "c", "target"},
			pageSize:  1,
			target:    "target",
			want:      true,
		},
		{
			name:      "absent across pages",
			functions: []string{"a", "b", "c"},
			pageSize:  2,
			target:    "target",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePlatform{functions: tt.functions, pageSize: tt.pageSize}
			got, err := NewLocator(fake).Exists(context.Background(), tt.target)
			if err != nil {
				t.Fatalf("Exists() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

// TestLocatorPaginationExhaustive 分页时每一页都必须被请求到。
func TestLocatorPaginationExhaustive(t *testing.T) {
	fake := &fakePlatform{functions: []string{"a", "b", "c", "d"}, pageSize: 1}
	found, err := NewLocator(fake).Exists(context.Background(), "d")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if !found {
		t.Fatal("expected function on the last page to be found")
	}
	if len(fake.calls) != 4 {
		t.Errorf("expected 4 list calls, got %d: %v", len(fake.calls), fake.calls)
	}
}

// TestLocatorErrorPropagates 枚举失败原样终止。
func TestLocatorErrorPropagates(t *testing.T) {
	boom := errors.New("throttled")
	fake := &fakePlatform{listErr: boom}
	_, err := NewLocator(fake).Exists(context.Background(), "f")
	if !errors.Is(err, boom) {
		t.Errorf("Exists() error = %v, want wrapped %v", err, boom)
	}
}
