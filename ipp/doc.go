/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Package ipp implements the Internet Printing Protocol message model,
 * its binary wire codec, and supporting registries and validation rules.
 * It does not implement HTTP transport, TLS, destination discovery, or
 * anything above the raw message: those are the caller's concern.
 */
package ipp
