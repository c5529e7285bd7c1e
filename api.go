package argon

// Key derives a key from the password and salt with Argon2id version 0x13.
//
// t is the number of passes, p the degree of parallelism (lanes) and m the
// memory size in KiB. The salt must be at least 8 bytes and keyLen at
// least 4.
func Key(password, salt []byte, t, p, m uint32, keyLen int) ([]byte, error) {
	return key(Argon2id, password, salt, t, p, m, keyLen)
}

// IKey is like Key but uses Argon2i.
func IKey(password, salt []byte, t, p, m uint32, keyLen int) ([]byte, error) {
	return key(Argon2i, password, salt, t, p, m, keyLen)
}

// DKey is like Key but uses Argon2d. Argon2d is not suitable for hashing
// secrets on machines shared with untrusted code.
func DKey(password, salt []byte, t, p, m uint32, keyLen int) ([]byte, error) {
	return key(Argon2d, password, salt, t, p, m, keyLen)
}

func key(alg Algorithm, password, salt []byte, t, p, m uint32, keyLen int) ([]byte, error) {
	if keyLen < MinOutputLen {
		return nil, ErrOutputTooShort
	}
	params, err := NewParams(m, t, p, keyLen)
	if err != nil {
		return nil, err
	}
	a, err := New(alg, DefaultVersion, params, nil)
	if err != nil {
		return nil, err
	}
	return a.Hash(password, salt)
}
