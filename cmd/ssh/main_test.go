package main

import (
	"sync"
	"testing"
)

func TestSizeTracker(t *testing.T) {
	st := newSizeTracker(80, 24)

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			st.update(80+n, 24+n)
			st.getSize()
		}(i)
	}
	wg.Wait()

	st.update(120, 40)
	w, h, err := st.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Errorf("getSize() = %d, %d, %v; want 120, 40, nil", w, h, err)
	}
}
