package filestore

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/ormenio/engine/controller"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var openFileReader = osFileReader

type reader interface {
	ReadBytes(delim byte) ([]byte, error)
	Close() error
}

type fileReader struct {
	*bufio.Reader
	f *os.File
}

func (r *fileReader) Close() error { return r.f.Close() }

func osFileReader(path string) (reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileReader{Reader: bufio.NewReader(f), f: f}, nil
}

// readLine decodes the next line into out. Blank and garbled lines are
// skipped; a crash can leave a partial last line behind.
func readLine(r reader, out interface{}) error {
	for {
		data, err := r.ReadBytes('\n')
		if len(data) > 0 {
			if jerr := json.Unmarshal(data, out); jerr == nil {
				return nil
			}
		}
		if err != nil {
			return err
		}
	}
}

func openArchive(directory, id string) (reader, error) {
	r, err := openFileReader(getFilePath(directory, id))
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, controller.ErrNotFound
		}
		return nil, errors.Wrapf(err, "unable to open game %s", id)
	}
	return r, nil
}

func closeArchive(r reader) {
	if err := r.Close(); err != nil {
		log.WithError(err).Warn("unable to close game file")
	}
}

// ReadGameInfo loads the game header stored in the file for the given id.
// Games read back from disk are always stopped.
func ReadGameInfo(directory, id string) (*pb.Game, error) {
	r, err := openArchive(directory, id)
	if err != nil {
		return nil, err
	}
	defer closeArchive(r)

	info := gameInfo{}
	if err := readLine(r, &info); err != nil {
		if err == io.EOF {
			return nil, controller.ErrNotFound
		}
		return nil, err
	}
	return &pb.Game{
		ID:         info.ID,
		Status:     rules.GameStatusStopped,
		Width:      info.Width,
		Height:     info.Height,
		StartLevel: info.StartLevel,
		BorderWrap: info.BorderWrap,
		Created:    info.Created,
	}, nil
}

// ReadGameFrames loads every frame stored after the header.
func ReadGameFrames(directory, id string) ([]*pb.GameFrame, error) {
	r, err := openArchive(directory, id)
	if err != nil {
		return nil, err
	}
	defer closeArchive(r)

	if err := readLine(r, &gameInfo{}); err != nil {
		if err == io.EOF {
			return []*pb.GameFrame{}, nil
		}
		return nil, err
	}

	frames := []*pb.GameFrame{}
	for {
		f := &pb.GameFrame{}
		err := readLine(r, f)
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
}
