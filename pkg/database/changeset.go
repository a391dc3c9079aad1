package database

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoChangeSet is returned when a repository tries to stage a write on a
// context that was not prepared with WithChangeSet.
var ErrNoChangeSet = errors.New("no change set in context")

// Change là một thao tác ghi đã được stage, chỉ chạy khi SaveChanges.
// Trả về số rows bị ảnh hưởng.
type Change func(ctx context.Context) (int64, error)

// ChangeSet gom các Change của một request cho tới khi commit.
// Không thread-safe: mỗi request sở hữu một ChangeSet riêng.
type ChangeSet struct {
	changes []Change
}

type changeSetKey struct{}

// WithChangeSet trả về context mới mang một ChangeSet rỗng
func WithChangeSet(ctx context.Context) context.Context {
	return context.WithValue(ctx, changeSetKey{}, &ChangeSet{})
}

// ChangeSetFromContext returns the request's change set, or nil.
func ChangeSetFromContext(ctx context.Context) *ChangeSet {
	cs, _ := ctx.Value(changeSetKey{}).(*ChangeSet)
	return cs
}

// Stage thêm change vào ChangeSet của context
func Stage(ctx context.Context, change Change) error {
	cs := ChangeSetFromContext(ctx)
	if cs == nil {
		return ErrNoChangeSet
	}
	cs.changes = append(cs.changes, change)
	return nil
}

// Len returns the number of pending changes.
func (cs *ChangeSet) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.changes)
}

// Apply chạy lần lượt các change theo thứ tự stage, dừng ở lỗi đầu tiên.
// ChangeSet luôn được làm rỗng sau khi Apply, kể cả khi lỗi.
func (cs *ChangeSet) Apply(ctx context.Context) (int, error) {
	if cs == nil {
		return 0, nil
	}
	pending := cs.changes
	cs.changes = nil

	total := 0
	for i, change := range pending {
		n, err := change(ctx)
		if err != nil {
			return 0, fmt.Errorf("change %d/%d failed: %w", i+1, len(pending), err)
		}
		total += int(n)
	}
	return total, nil
}

// Discard drops every pending change.
func (cs *ChangeSet) Discard() {
	if cs != nil {
		cs.changes = nil
	}
}
