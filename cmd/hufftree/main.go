// Command hufftree prints the Huffman code table of a file, or compresses and
// decompresses files with a static Huffman code.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"

	huffman "github.com/chronos-tachyon/hufftree"
	"github.com/chronos-tachyon/hufftree/stream"
)

var Commands = [...]string{"table", "compress", "decompress"}

var (
	outputFlag   = flag.String("o", "", "write output to this file instead of stdout")
	progressFlag = flag.Bool("progress", false, "show a progress bar while reading the input")
	noColorFlag  = flag.Bool("no-color", false, "disable colored output")
	verboseFlag  = flag.Bool("v", false, "verbose")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("hufftree: ")

	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		usage()
		os.Exit(2)
	}
	command, inputPath := args[0], "-"
	if len(args) == 2 {
		inputPath = args[1]
	}

	if !isCommand(command) {
		log.Printf("unknown command %q", command)
		usage()
		os.Exit(2)
	}

	if *noColorFlag || *outputFlag != "" {
		color.NoColor = true
	}

	data, err := readInput(inputPath)
	if err != nil {
		log.Fatal(err)
	}
	verbosef("read %d bytes from %s", len(data), inputPath)

	out, closeOut, err := openOutput(*outputFlag)
	if err != nil {
		log.Fatal(err)
	}

	switch command {
	case "table":
		err = printTable(out, data)
	case "compress":
		err = compress(out, data)
	case "decompress":
		err = decompress(out, data)
	}
	if closeErr := closeOut(); err == nil {
		err = closeErr
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\t%s [flags] <command> [file]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Valid commands include:\n\t%s, %s, %s\n", Commands[0], Commands[1], Commands[2])
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func isCommand(command string) bool {
	for _, c := range Commands {
		if c == command {
			return true
		}
	}
	return false
}

func verbosef(format string, args ...interface{}) {
	if *verboseFlag {
		log.Printf(format, args...)
	}
}

func readInput(path string) ([]byte, error) {
	var r io.Reader = os.Stdin
	var size int64
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if fi, err := f.Stat(); err == nil {
			size = fi.Size()
		}
		r = f
	}

	if !*progressFlag {
		return io.ReadAll(r)
	}

	bar := pb.Full.Start64(size)
	bar.SetWriter(os.Stderr)
	defer bar.Finish()
	return io.ReadAll(bar.NewProxyReader(r))
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		bw := bufio.NewWriter(os.Stdout)
		return bw, bw.Flush, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	bw := bufio.NewWriter(f)
	closeFn := func() error {
		if err := bw.Flush(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return bw, closeFn, nil
}

// printTable prints the code of every character of the input, shortest
// codes first.
func printTable(w io.Writer, data []byte) error {
	symbols := []rune(string(data))
	freqs := huffman.CountFrequencies(symbols)
	enc, err := huffman.NewEncoderFromFrequencies(freqs)
	if err != nil {
		return err
	}

	table := enc.Table()
	header := color.New(color.Bold)
	symbolColor := color.New(color.FgCyan).SprintFunc()
	codeColor := color.New(color.FgGreen).SprintFunc()

	header.Fprintf(w, "%-10s %10s %5s  %s\n", "SYMBOL", "COUNT", "SIZE", "CODE")
	for _, symbol := range table.SymbolsBySize() {
		hc := table[symbol]
		fmt.Fprintf(w, "%s %10d %5d  %s\n",
			symbolColor(fmt.Sprintf("%-10s", strconv.QuoteRune(symbol))),
			freqs[symbol],
			hc.Size,
			codeColor(hc.String()))
	}

	total := freqs.Total()
	bits := table.WeightedSize(freqs)
	header.Fprintf(w, "%d distinct symbols, %d symbols, %d bits, %.3f bits/symbol\n",
		len(table), total, bits, float64(bits)/float64(total))
	return nil
}

func compress(w io.Writer, data []byte) error {
	cw := &countingWriter{w: w}
	if err := stream.Compress(cw, data); err != nil {
		return err
	}
	verbosef("original size (in bytes): %d", len(data))
	verbosef("compressed size (in bytes): %d", cw.n)
	verbosef("compression ratio: %.2f%%", float64(cw.n)/float64(len(data))*100)
	return nil
}

func decompress(w io.Writer, data []byte) error {
	sr := stream.NewReader(bytes.NewReader(data))
	h, err := sr.ReadHeader()
	if err != nil {
		return err
	}
	verbosef("stream holds %d bytes coded with %d symbols", h.Length, len(h.Table))

	n, err := io.Copy(w, sr)
	if err != nil {
		return err
	}
	verbosef("decompressed size (in bytes): %d", n)
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
