/*
CRCLFSR computes the CRC frame check sequence of a message two independent ways
and checks that they agree: by modulo 2 long division of the message, shifted
left by the degree of the generator polynomial, and by clocking the message
through a linear feedback shift register. Byte aligned messages are also run
through a table-driven implementation.

Only the textbook variant is supported: unreflected, MSB first, zero initial
register and no final xor. Messages, polynomials and codewords are held in 64
bits, so the polynomial degree is at most 63 and the message width plus the
degree may not exceed 64.

Command-line Flags:

	-message="0b10001000100010001000000110000001"

Message to encode. Accepts binary (0b), octal (0o), hex (0x) or decimal
literals. A binary literal's width is its number of digits, so leading zeros
are significant.

	-width=0

Message width in bits. Zero infers the width from the message literal. A width
narrower than the message value is rejected rather than truncated.

	-poly="demo"

Generator polynomial, either a literal or one of the catalog names: demo
(x^6 + x^4 + x^3 + x + 1), crc8, ibm, ccitt, bch and crc32.

	-received=""

Optional received word. Its remainder is computed and reported as a detected
transmission error if non-zero.

	-out="-,crc_report.txt"

Comma-separated list of sinks the transcript is written to. "-" or "stdout" is
the console, anything else is a file. A file that cannot be created is logged
as a warning and skipped.

	-format="plain"

Output format. Plain writes the transcript: the division diagrams, the LFSR
evolution table and the comparison. CSV writes the LFSR table. JSON writes the
results without intermediate steps.

	-quiet=false

Omit the division diagrams and the LFSR table from plain output.

	-loglevel="info"

Log level for messages written to stderr.

Any flag may also be set with an environment variable named CRCLFSR_ followed
by the upper case flag name, for example CRCLFSR_POLY=ccitt.

Exit status is 0 when every method agrees and the codeword divides evenly, 1
when the methods diverge and 2 for invalid input.
*/
package main
