/*
Package qtesla is a pure Go implementation of the qTESLA family of lattice-based digital signatures.
It provides the constant-time polynomial arithmetic over the rings Z_q[X]/(X^N+1) and
Z_q[x,y]/(x^m+1, y^6+y^3+1) in the ring package, the bit-exact encoding of keys and signatures
in utils/buffer, and key generation, signing and verification with rejection sampling in the
sign package.
*/
package qtesla
