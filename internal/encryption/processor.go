package encryption

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gogen/pkg/key"

	"github.com/idelchi/goctr/internal/config"
	"github.com/idelchi/goctr/internal/fileutil"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key stores raw key bytes
	key []byte

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a new Processor with the given configuration.
// It resolves the key material and validates its length up front, so a bad
// key fails here with a clear configuration error instead of on first use.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	var (
		encryptionKey []byte
		err           error
	)

	switch {
	case cfg.Key != "":
		encryptionKey, err = key.FromHex(cfg.Key)
	case cfg.KeyFile != "":
		encryptionKey, err = os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		encryptionKey, err = key.FromHex(strings.TrimSpace(string(encryptionKey)))
	default:
		return nil, errors.New("no key provided")
	}

	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	if !IsKeyLengthSupported(len(encryptionKey)) {
		return nil, fmt.Errorf("%w: got %d bytes", ErrUnsupportedKeyLength, len(encryptionKey))
	}

	return &Processor{
		cfg:     cfg,
		key:     encryptionKey,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files and the number of errors.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Failed() {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Source, result.Err)

				continue
			}

			processed++

			totalSize += result.Written

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Source, result.Destination) //nolint:forbidigo
			}

			if p.cfg.Delete {
				if err := os.Remove(result.Source); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Source, err)
				}

				if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Source) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- failure(file, err)

				return err
			}

			p.results <- Result{Source: file, Destination: outPath, Written: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// encrypt writes a fresh container header for reader's contents, then streams
// plaintext through the seekable CTR transform into writer. Every stream gets
// its own random base counter, so a fixed key never sees a repeated counter.
func (p *Processor) encrypt(reader io.Reader, writer io.Writer, isExec bool) error {
	header, err := NewHeader(len(p.key), isExec)
	if err != nil {
		return err
	}

	if _, err := header.WriteTo(writer); err != nil {
		return err
	}

	enc, err := NewEncryptor(p.key, header.Counter)
	if err != nil {
		return err
	}

	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer bufferPool.Put(buf) //nolint:staticcheck

	if _, err := io.CopyBuffer(newEncryptingWriter(writer, enc), reader, buf); err != nil {
		return fmt.Errorf("encrypting stream: %w", err)
	}

	return nil
}

// decrypt parses the container header of file, checks it against the key,
// and streams the plaintext to writer. It returns whether the original file
// was executable.
func (p *Processor) decrypt(file *os.File, writer io.Writer) (bool, error) {
	var header Header

	if _, err := header.ReadFrom(file); err != nil {
		return false, err
	}

	if err := header.CheckKey(len(p.key)); err != nil {
		return false, err
	}

	info, err := file.Stat()
	if err != nil {
		return false, fmt.Errorf("getting file info: %w", err)
	}

	enc, err := NewEncryptor(p.key, header.Counter)
	if err != nil {
		return false, err
	}

	reader := newDecryptingReader(file, enc, int64(HeaderSize), info.Size()-int64(HeaderSize))

	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return false, errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer bufferPool.Put(buf) //nolint:staticcheck

	if _, err := io.CopyBuffer(writer, reader, buf); err != nil {
		return false, fmt.Errorf("decrypting stream: %w", err)
	}

	return header.Executable, nil
}

// processFile handles the encryption or decryption of a single file.
// It creates a temporary file for output and performs an atomic rename on completion.
//
//nolint:funlen,cyclop
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	const ownerReadWrite = 0o600

	perm := os.FileMode(ownerReadWrite)

	if p.cfg.Decrypt {
		execOut, err := p.decrypt(inFile, tc.TmpFile)
		if err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}

		if execOut {
			perm |= 0o111
		}
	} else {
		if err := p.encrypt(inFile, tc.TmpFile, tc.IsExec); err != nil {
			return 0, fmt.Errorf("encrypting file: %w", err)
		}

		if tc.IsExec {
			perm |= 0o111
		}
	}

	if err := os.Chmod(tc.TmpName, perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	if err := os.Rename(tc.TmpName, outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.EncryptSuffix

	if p.cfg.Decrypt {
		filename = strings.TrimSuffix(filename, p.cfg.EncryptSuffix)
		ext = p.cfg.DecryptSuffix
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
