package stdlib

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/funvibe/aurora/internal/evaluator"
)

func loadIO(r *registry) {
	r.fn("ask", 1, builtinAsk)
}

// ask prints the prompt and reads one line without its line ending. At end
// of input it returns what was read, possibly "".
func builtinAsk(ctx *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	prompt, err := stringArg("ask", args, 0)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprint(ctx.Stdout, prompt); err != nil {
		return nil, failure("ask", err)
	}
	line, err := ctx.Stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, failure("ask", err)
	}
	return str(strings.TrimRight(line, "\r\n")), nil
}

// Files. Names ending in ! overwrite or remove; the plain forms leave an
// existing target alone.
func loadFile(r *registry) {
	r.fn("read", 1, builtinRead)
	r.sub("write!", 2, func(_ *evaluator.Context, args []evaluator.Value) error {
		path, err := stringArg("write!", args, 0)
		if err != nil {
			return err
		}
		text, err := stringArg("write!", args, 1)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return failure("write!", err)
		}
		return nil
	})
	r.fn("exists?", 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		path, err := stringArg("exists?", args, 0)
		if err != nil {
			return nil, err
		}
		_, err = os.Stat(path)
		return evaluator.NativeBool(err == nil), nil
	})
	r.sub("new", 1, func(_ *evaluator.Context, args []evaluator.Value) error {
		return createFile("new", args, os.O_CREATE|os.O_EXCL)
	})
	r.sub("new!", 1, func(_ *evaluator.Context, args []evaluator.Value) error {
		return createFile("new!", args, os.O_CREATE|os.O_TRUNC)
	})
	r.sub("delete!", 1, func(_ *evaluator.Context, args []evaluator.Value) error {
		path, err := stringArg("delete!", args, 0)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return failure("delete!", err)
		}
		return nil
	})
	r.sub("copy", 2, func(_ *evaluator.Context, args []evaluator.Value) error {
		return copyFile("copy", args, false)
	})
	r.sub("copy!", 2, func(_ *evaluator.Context, args []evaluator.Value) error {
		return copyFile("copy!", args, true)
	})
	r.sub("move", 2, func(_ *evaluator.Context, args []evaluator.Value) error {
		return moveFile("move", args, false)
	})
	r.sub("move!", 2, func(_ *evaluator.Context, args []evaluator.Value) error {
		return moveFile("move!", args, true)
	})
}

// read returns the file's contents, or false when it does not exist.
func builtinRead(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	path, err := stringArg("read", args, 0)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return evaluator.FALSE, nil
	}
	if err != nil {
		return nil, failure("read", err)
	}
	return str(string(data)), nil
}

func createFile(name string, args []evaluator.Value, flag int) error {
	path, err := stringArg(name, args, 0)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, flag|os.O_WRONLY, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return failure(name, err)
	}
	return f.Close()
}

func pathPair(name string, args []evaluator.Value) (string, string, error) {
	src, err := stringArg(name, args, 0)
	if err != nil {
		return "", "", err
	}
	dst, err := stringArg(name, args, 1)
	if err != nil {
		return "", "", err
	}
	return src, dst, nil
}

func copyFile(name string, args []evaluator.Value, overwrite bool) error {
	src, dst, err := pathPair(name, args)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return failure(name, err)
	}
	defer in.Close()

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag |= os.O_EXCL
	}
	out, err := os.OpenFile(dst, flag, 0644)
	if err != nil {
		return failure(name, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return failure(name, err)
	}
	if err := out.Close(); err != nil {
		return failure(name, err)
	}
	return nil
}

// moveFile renames src to dst. Without overwrite an existing dst is left
// in place and src is not moved.
func moveFile(name string, args []evaluator.Value, overwrite bool) error {
	src, dst, err := pathPair(name, args)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}
	if err := os.Rename(src, dst); err != nil {
		return failure(name, err)
	}
	return nil
}
