/*
 * doc.go, part of egsphsp.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package stream applies an affine transform to every particle record of a phase-space
file without loading the file into memory.

Records are read in chunks of a fixed number of bytes that has nothing to do with the
record length. Whatever is left of a chunk after its whole records have been processed is
carried over to the front of the next one, so a record split across two reads is
processed exactly once, and every record is processed whatever the chunk size.

Transform writes a new file. TransformInPlace rewrites the records region of the source
file, writing each processed span back at the offset it was read from before the next read.
Neither is atomic: a failure leaves a partial destination, or a partially rewritten source.
Scan runs the same reader over a file without writing anything.
*/
package stream
