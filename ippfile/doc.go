/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Package ippfile implements the IPP data-file text format: the
 * DEFINE/GROUP/ATTR/MEMBER directive grammar used to describe an IPP
 * message as a human-readable, checked-in test fixture or printer
 * description archive.
 */
package ippfile
