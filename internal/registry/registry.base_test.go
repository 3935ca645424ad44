package registry

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry[int]()

	if isNew := reg.Register("a", 1); !isNew {
		t.Errorf("Register lần đầu phải trả về true")
	}
	if isNew := reg.Register("a", 2); isNew {
		t.Errorf("Register ghi đè phải trả về false")
	}

	v, ok := reg.Get("a")
	if !ok || v != 2 {
		t.Errorf("Get(a) = (%d, %v), muốn (2, true)", v, ok)
	}

	_, ok = reg.Get("khong_ton_tai")
	if ok {
		t.Errorf("Get với tên không tồn tại phải trả về false")
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	reg := NewRegistry[string]()
	calls := 0

	v := reg.GetOrCreate("x", func() string {
		calls++
		return "tạo mới"
	})
	if v != "tạo mới" || calls != 1 {
		t.Errorf("GetOrCreate lần đầu phải gọi creator đúng 1 lần")
	}

	v = reg.GetOrCreate("x", func() string {
		calls++
		return "không được gọi"
	})
	if v != "tạo mới" || calls != 1 {
		t.Errorf("GetOrCreate lần hai không được gọi creator, calls = %d", calls)
	}
}

func TestRegistry_ClearWithCleanup(t *testing.T) {
	reg := NewRegistry[int]()
	reg.Register("a", 1)

	cleaned := false
	ok := reg.Clear("a", func(v int) { cleaned = true })
	if !ok || !cleaned {
		t.Errorf("Clear phải gọi cleanup và trả về true")
	}
	if reg.Len() != 0 {
		t.Errorf("Sau Clear, Len = %d, muốn 0", reg.Len())
	}

	if reg.Clear("a", nil) {
		t.Errorf("Clear tên không tồn tại phải trả về false")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry[int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("item_%d", n%10)
			reg.Register(name, n)
			reg.Get(name)
			reg.GetOrCreate(name, func() int { return n })
		}(i)
	}
	wg.Wait()

	if reg.Len() != 10 {
		t.Errorf("Len = %d, muốn 10", reg.Len())
	}
}
