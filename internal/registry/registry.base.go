// Package registry cung cấp một registry generic thread-safe
// dùng để quản lý các tài nguyên dùng chung theo tên (collection, service...).
package registry

import (
	"sync"
)

// Registry là một kho chứa key-value thread-safe với kiểu giá trị generic.
//
// Ví dụ:
//
//	reg := registry.NewRegistry[*mongo.Collection]()
//	reg.Register("stores", coll)
//	coll, ok := reg.Get("stores")
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo một Registry mới rỗng.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký item với tên cho trước.
// Trả về true nếu tên chưa tồn tại (đăng ký mới), false nếu ghi đè.
func (r *Registry[T]) Register(name string, item T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists
}

// Get trả về item theo tên. Trả về zero value và false nếu không tồn tại.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[name]
	return item, ok
}

// GetOrCreate trả về item theo tên; nếu chưa tồn tại thì gọi creator
// để tạo mới, đăng ký rồi trả về. creator chỉ được gọi khi cần.
func (r *Registry[T]) GetOrCreate(name string, creator func() T) T {
	r.mu.RLock()
	if item, ok := r.items[name]; ok {
		r.mu.RUnlock()
		return item
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// Kiểm tra lại sau khi nâng lock
	if item, ok := r.items[name]; ok {
		return item
	}
	item := creator()
	r.items[name] = item
	return item
}

// Update cập nhật item theo tên bằng hàm updater.
// Trả về false nếu tên không tồn tại.
func (r *Registry[T]) Update(name string, updater func(T) T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[name]
	if !ok {
		return false
	}
	r.items[name] = updater(item)
	return true
}

// Names trả về danh sách tên đã đăng ký (không theo thứ tự).
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}

// Len trả về số item đang đăng ký.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Clear xóa item theo tên. Nếu cleanup khác nil thì được gọi với item
// trước khi xóa (đóng kết nối, giải phóng tài nguyên...).
func (r *Registry[T]) Clear(name string, cleanup func(T)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[name]
	if !ok {
		return false
	}
	if cleanup != nil {
		cleanup(item)
	}
	delete(r.items, name)
	return true
}

// ClearAll xóa toàn bộ items. cleanup (nếu có) được gọi cho từng item.
func (r *Registry[T]) ClearAll(cleanup func(T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cleanup != nil {
		for _, item := range r.items {
			cleanup(item)
		}
	}
	r.items = make(map[string]T)
}
