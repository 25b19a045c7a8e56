package loader

// semaphore bounds how many files are parsed at the same time.
type semaphore struct {
	slots chan struct{}
}

func newSemaphore(v int) *semaphore {
	return &semaphore{
		slots: make(chan struct{}, v),
	}
}

func (s *semaphore) Lock() {
	s.slots <- struct{}{}
}

func (s *semaphore) Unlock() {
	<-s.slots
}
