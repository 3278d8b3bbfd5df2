package confstore

import (
	"os"
	"syscall"
)

// fileLock holds an advisory lock serializing read-modify-write cycles on
// one config file across processes.
type fileLock struct {
	file *os.File
}

// acquireLock gets an exclusive flock on a lock file next to the resource.
// The lock file is never unlinked: removing it would let a waiter blocked
// on the old inode and a newcomer locking a freshly created one both
// proceed at once.
func acquireLock(path string) (*fileLock, error) {
	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, err
	}

	return &fileLock{file: f}, nil
}

// release drops the flock by closing the lock file.
func (l *fileLock) release() {
	l.file.Close()
}
