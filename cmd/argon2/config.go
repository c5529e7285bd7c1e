package main

import (
	"github.com/pkg/errors"

	argon "github.com/magical/argon2"
)

type config struct {
	Argon2d  bool `short:"d" description:"Use Argon2d instead of Argon2i"`
	Argon2i  bool `short:"i" description:"Use Argon2i (the default)"`
	Argon2id bool `long:"id" description:"Use Argon2id instead of Argon2i"`

	Time        uint32 `short:"t" long:"time" default:"3" env:"ARGON2_TIME" description:"Number of iterations"`
	LogMemory   uint   `short:"m" long:"memory-log2" default:"12" env:"ARGON2_MEMORY_LOG2" description:"Memory usage of 2^N KiB"`
	Memory      uint32 `short:"k" long:"memory" env:"ARGON2_MEMORY" description:"Memory usage of N KiB, overrides -m"`
	Parallelism uint32 `short:"p" long:"parallelism" default:"1" env:"ARGON2_PARALLELISM" description:"Number of lanes"`
	Length      int    `short:"l" long:"length" default:"32" env:"ARGON2_LENGTH" description:"Hash output length in bytes"`
	Version     string `short:"v" long:"version" default:"13" choice:"10" choice:"13" env:"ARGON2_VERSION" description:"Argon2 version"`

	Secret         string `long:"secret" env:"ARGON2_SECRET" description:"Hex-encoded secret key"`
	AssociatedData string `long:"ad" env:"ARGON2_AD" description:"Hex-encoded associated data"`

	Parallel bool `long:"parallel" env:"ARGON2_PARALLEL" description:"Fill lanes concurrently"`
	Raw      bool `short:"r" long:"raw" description:"Only print the hash, in hex"`
	Verbose  bool `long:"verbose" description:"Log parameters to stderr"`

	Args struct {
		Salt string `positional-arg-name:"salt" required:"yes" description:"Salt, at least 8 bytes"`
	} `positional-args:"yes"`
}

func (c *config) algorithm() (argon.Algorithm, error) {
	n := 0
	alg := argon.Argon2i
	if c.Argon2d {
		n++
		alg = argon.Argon2d
	}
	if c.Argon2i {
		n++
	}
	if c.Argon2id {
		n++
		alg = argon.Argon2id
	}
	if n > 1 {
		return 0, errors.New("only one of -d, -i and --id may be given")
	}
	return alg, nil
}

func (c *config) version() (argon.Version, error) {
	switch c.Version {
	case "10":
		return argon.Version10, nil
	case "13":
		return argon.Version13, nil
	}
	return 0, errors.Wrapf(argon.ErrVersionInvalid, "version %q", c.Version)
}

func (c *config) memory() (uint32, error) {
	if c.Memory != 0 {
		return c.Memory, nil
	}
	if c.LogMemory >= 32 {
		return 0, errors.Wrapf(argon.ErrMemoryTooMuch, "2^%d KiB", c.LogMemory)
	}
	return 1 << c.LogMemory, nil
}
