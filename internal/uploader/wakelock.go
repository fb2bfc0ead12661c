package uploader

// WakeLock keeps the host device awake while a chunked upload is running.
// Platforms revoke such locks silently, so holders must be able to check
// and re-acquire mid-upload.
type WakeLock interface {
	Acquire() error
	Release()
	Held() bool
}

// NopWakeLock is the wake lock for hosts that never sleep mid-process
type NopWakeLock struct {
	held bool
}

func NewNopWakeLock() *NopWakeLock {
	return &NopWakeLock{}
}

func (l *NopWakeLock) Acquire() error {
	l.held = true
	return nil
}

func (l *NopWakeLock) Release() {
	l.held = false
}

func (l *NopWakeLock) Held() bool {
	return l.held
}
