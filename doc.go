/*

Package argon implements the Argon2 memory-hard password hashing function
as specified in RFC 9106

	https://www.rfc-editor.org/rfc/rfc9106.html

Argon2 comes in three flavors:

Argon2d uses data-dependent memory access. It is the fastest, but not suitable for hashing secret information due to potential side-channel attacks.

Argon2i uses data-independent memory access, making it suitable for hashing secret information such as passwords.

Argon2id uses data-independent access for the first half of the first pass and data-dependent access afterwards. It is the recommended choice.

Both version 0x13 (current) and version 0x10 (legacy) are supported.

Memory is a matrix of 1 KiB blocks with one row ("lane") per degree of
parallelism. Lanes can be filled concurrently by setting Options.Parallel;
the output does not depend on it.

*/
package argon
