// Command tinyseg splits Japanese text into words, one line at a time.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/teatak/tinyseg/model"
	"github.com/teatak/tinyseg/segmenter"
	"github.com/teatak/tinyseg/util"
)

const version = "0.1.0"

var separators = map[string]string{
	"tab":    "\t",
	"zero":   "\x00",
	"return": "\r",
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: tinyseg [options] [file ...]
Segments every line of the files, or of standard input, into words.

Options:
  -s, --separator=tab|zero|return  write this after each word (default: newline)
  -m, --model=path                 feature-weight table (default: $TINYSEG_MODEL)
  -h, --help                       show this help and exit
  -v, --version                    show the version and exit
`)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		sepName     string
		modelPath   string
		help        bool
		showVersion bool
	)
	fs := flag.NewFlagSet("tinyseg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	fs.StringVar(&sepName, "s", "", "separator")
	fs.StringVar(&sepName, "separator", "", "separator")
	fs.StringVar(&modelPath, "m", util.GetEnv("TINYSEG_MODEL", ""), "model")
	fs.StringVar(&modelPath, "model", util.GetEnv("TINYSEG_MODEL", ""), "model")
	fs.BoolVar(&help, "h", false, "help")
	fs.BoolVar(&help, "help", false, "help")
	fs.BoolVar(&showVersion, "v", false, "version")
	fs.BoolVar(&showVersion, "version", false, "version")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if help {
		usage(stdout)
		return 0
	}
	if showVersion {
		fmt.Fprintf(stdout, "tinyseg %s\n", version)
		return 0
	}

	sep := "\n"
	if sepName != "" {
		s, ok := separators[sepName]
		if !ok {
			fmt.Fprintf(stderr, "tinyseg: unknown separator %q\n", sepName)
			usage(stderr)
			return 1
		}
		sep = s
	}

	m := model.Empty()
	if modelPath == "" {
		fmt.Fprintln(stderr, "tinyseg: warning: no model given (-m or $TINYSEG_MODEL); every line is one word")
	} else {
		var err error
		if m, err = model.LoadFile(modelPath); err != nil {
			fmt.Fprintf(stderr, "tinyseg: loading model: %v\n", err)
			return 1
		}
	}
	seg := segmenter.New(m)

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	files := fs.Args()
	if len(files) == 0 {
		interactive := false
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			interactive = true
			fmt.Fprintln(stderr, "Enter text to segment (Ctrl+D to exit):")
		}
		if err := segmentLines(seg, stdin, out, sep, interactive); err != nil {
			fmt.Fprintf(stderr, "tinyseg: reading standard input: %v\n", err)
			return 1
		}
		return 0
	}

	for _, path := range files {
		file, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "tinyseg: %v\n", err)
			return 1
		}
		err = segmentLines(seg, file, out, sep, false)
		file.Close()
		if err != nil {
			fmt.Fprintf(stderr, "tinyseg: reading %s: %v\n", path, err)
			return 1
		}
	}
	return 0
}

// segmentLines writes every word of every line of r to out, each followed by
// sep. Lines are not length limited.
func segmentLines(seg *segmenter.Segmenter, r io.Reader, out *bufio.Writer, sep string, flushEachLine bool) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			for _, word := range seg.Segment(line) {
				out.WriteString(word)
				out.WriteString(sep)
			}
			if flushEachLine {
				if ferr := out.Flush(); ferr != nil {
					return ferr
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
