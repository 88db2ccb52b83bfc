package log

import (
	"io"
	"os"
	"path"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
)

const ErrorFileName = "error.json"

// HandlerOptions selects where log15 records go.
type HandlerOptions struct {
	// Level is a log15 level name: debug, info, warn, error, crit.
	Level string
	// Terminal enables colored output, otherwise records are written as logfmt.
	Terminal bool
	Out      io.Writer
	// ErrorDir, when set, additionally receives error records as json lines.
	ErrorDir string
}

// New returns a log15 logger with the given context writing info and above
// as logfmt to stderr.
func New(ctx ...interface{}) log15.Logger {
	log := log15.New(ctx...)
	log.SetHandler(log15.LvlFilterHandler(log15.LvlInfo, log15.StreamHandler(os.Stderr, log15.LogfmtFormat())))
	return log
}

func NewHandler(opts HandlerOptions) (log15.Handler, error) {
	lvl := log15.LvlInfo
	if opts.Level != "" {
		var err error
		if lvl, err = log15.LvlFromString(opts.Level); err != nil {
			return nil, errors.Wrapf(err, "invalid log level [%s]", opts.Level)
		}
	}

	var stream log15.Handler
	switch {
	case opts.Out != nil && opts.Terminal:
		stream = log15.StreamHandler(opts.Out, log15.TerminalFormat())
	case opts.Out != nil:
		stream = log15.StreamHandler(opts.Out, log15.LogfmtFormat())
	case opts.Terminal:
		stream = log15.StreamHandler(colorable.NewColorableStderr(), log15.TerminalFormat())
	default:
		stream = log15.StreamHandler(os.Stderr, log15.LogfmtFormat())
	}
	handlers := []log15.Handler{log15.LvlFilterHandler(lvl, stream)}

	if opts.ErrorDir != "" {
		if _, err := CreateDirIfMissing(opts.ErrorDir); err != nil {
			return nil, err
		}
		fh, err := log15.FileHandler(path.Join(opts.ErrorDir, ErrorFileName), log15.JsonFormat())
		if err != nil {
			return nil, errors.Wrap(err, "error opening error log file")
		}
		handlers = append(handlers, log15.LvlFilterHandler(log15.LvlError, fh))
	}
	return log15.SyncHandler(log15.MultiHandler(handlers...)), nil
}

// CreateDirIfMissing creates a dir for dirPath if not already exists. If the dir is empty it returns true
func CreateDirIfMissing(dirPath string) (bool, error) {
	// if dirPath does not end with a path separator, it leaves out the last segment while creating directories
	if !strings.HasSuffix(dirPath, "/") {
		dirPath = dirPath + "/"
	}
	err := os.MkdirAll(path.Dir(dirPath), 0755)
	if err != nil {
		return false, errors.Wrapf(err, "error creating dir [%s]", dirPath)
	}
	return DirEmpty(dirPath)
}

// DirEmpty returns true if the dir at dirPath is empty
func DirEmpty(dirPath string) (bool, error) {
	f, err := os.Open(dirPath)
	if err != nil {
		return false, errors.Wrapf(err, "error opening dir [%s]", dirPath)
	}
	defer f.Close()

	_, err = f.Readdir(1)
	if err == io.EOF {
		return true, nil
	}
	err = errors.Wrapf(err, "error checking if dir [%s] is empty", dirPath)
	return false, err
}
