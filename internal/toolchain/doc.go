// Package toolchain describes C and C++ compilers and linkers as capability
// interfaces and turns a configured toolchain into ninja rules.
package toolchain
