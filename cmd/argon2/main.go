// Command argon2 hashes a password read from standard input.
//
//	echo -n "password" | argon2 somesalt --id -t 2 -m 16 -p 4 -l 24
//
// It follows the command line of the RFC 9106 reference implementation,
// minus the PHC encoded output.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/howeyc/gopass"
	flags "github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	argon "github.com/magical/argon2"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var conf config
	parser := flags.NewParser(&conf, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "argon2"
	if _, err := parser.ParseArgs(args); err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, ferr.Message)
			return nil
		}
		return err
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)
	if conf.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	alg, err := conf.algorithm()
	if err != nil {
		return err
	}
	version, err := conf.version()
	if err != nil {
		return err
	}
	memory, err := conf.memory()
	if err != nil {
		return err
	}
	secret, err := decodeHex("secret", conf.Secret)
	if err != nil {
		return err
	}
	ad, err := decodeHex("associated data", conf.AssociatedData)
	if err != nil {
		return err
	}

	// NewParams reads a zero length as "default".
	if conf.Length < argon.MinOutputLen {
		return errors.Wrap(argon.ErrOutputTooShort, "invalid parameters")
	}
	params, err := argon.NewParams(memory, conf.Time, conf.Parallelism, conf.Length)
	if err != nil {
		return errors.Wrap(err, "invalid parameters")
	}
	a, err := argon.New(alg, version, params, &argon.Options{
		Secret:         secret,
		AssociatedData: ad,
		Parallel:       conf.Parallel,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	password, err := readPassword(stdin, stderr)
	if err != nil {
		return errors.Wrap(err, "reading password")
	}

	start := time.Now()
	hash, err := a.Hash(password, []byte(conf.Args.Salt))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if conf.Raw {
		fmt.Fprintln(stdout, hex.EncodeToString(hash))
		return nil
	}

	label := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(stdout, "%s\t\t%s\n", label("Type:"), alg)
	fmt.Fprintf(stdout, "%s\t%s\n", label("Version:"), version)
	fmt.Fprintf(stdout, "%s\t%d\n", label("Iterations:"), params.TCost)
	fmt.Fprintf(stdout, "%s\t\t%d KiB (%s)\n", label("Memory:"), params.MCost,
		humanize.IBytes(uint64(params.BlockCount())*argon.BlockSize))
	fmt.Fprintf(stdout, "%s\t%d\n", label("Parallelism:"), params.PCost)
	fmt.Fprintf(stdout, "%s\t\t%s\n", label("Hash:"), hex.EncodeToString(hash))
	fmt.Fprintf(stdout, "%.3f seconds\n", elapsed.Seconds())
	return nil
}

// readPassword prompts without echo when stdin is a terminal and reads
// stdin to EOF otherwise. Piped input is used as is, trailing newline
// included, like the reference tool.
func readPassword(stdin io.Reader, stderr io.Writer) ([]byte, error) {
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return gopass.GetPasswdPrompt("Password: ", false, f, stderr)
	}
	return io.ReadAll(stdin)
}

func decodeHex(what, s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", what)
	}
	return b, nil
}
