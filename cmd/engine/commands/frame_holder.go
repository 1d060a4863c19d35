package commands

import (
	"sync"

	"github.com/ormenio/engine/controller/pb"
)

// frameHolder collects frames as they stream in. The first frame is also
// handed out on initialFrame so a renderer can wait for it.
type frameHolder struct {
	sync.RWMutex
	frames []*pb.GameFrame
	once   sync.Once
	ffc    chan *pb.GameFrame
}

func (fh *frameHolder) first() chan *pb.GameFrame {
	fh.once.Do(func() { fh.ffc = make(chan *pb.GameFrame, 1) })
	return fh.ffc
}

func (fh *frameHolder) append(frames ...*pb.GameFrame) {
	if len(frames) == 0 {
		return
	}
	fh.Lock()
	defer fh.Unlock()

	if len(fh.frames) == 0 {
		fh.first() <- frames[0]
	}
	fh.frames = append(fh.frames, frames...)
}

func (fh *frameHolder) get(index int) *pb.GameFrame {
	fh.RLock()
	defer fh.RUnlock()

	if index < 0 || index >= len(fh.frames) {
		return nil
	}

	return fh.frames[index]
}

func (fh *frameHolder) last() *pb.GameFrame {
	fh.RLock()
	defer fh.RUnlock()

	if len(fh.frames) == 0 {
		return nil
	}
	return fh.frames[len(fh.frames)-1]
}

func (fh *frameHolder) initialFrame() <-chan *pb.GameFrame {
	return fh.first()
}

func (fh *frameHolder) count() int {
	fh.RLock()
	defer fh.RUnlock()

	return len(fh.frames)
}
