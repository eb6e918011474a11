/*
Package escape converts between codepoints and their backslash escape
sequences.

Escape syntax:
-------------

	\n \r \t \f \v \b \a     single letter aliases for control characters
	\\ \" \'                 the character itself
	\xHH                     exactly 2 hex digits
	\uHHHH                   exactly 4 hex digits
	\UHHHHHHHH               exactly 8 hex digits
	\O \OO \OOO              1 to 3 octal digits

Direction:
---------

	     raw UTF-8 text                       escaped text
	          |                                     |
	  codepoint.Decode                            Scan
	          |                                     |
	          v                                     v
	      Codepoint  --- Emit / AddEscape --->  \u00E9, \n, ...
	      Codepoint  <-------- Scan ----------  \u00E9, \n, ...

A Policy decides which codepoints must be escaped; everything else is
written as raw UTF-8. Writes go to a codepoint.Buffer and are atomic: the
whole sequence is written or nothing is.

Insert and Expand run the two directions over whole strings:

	escape.InsertString("tab\there \"q\"\x01", escape.DefaultPolicy)
	// tab	here \x22q\x22\x01

	escape.ExpandString(`caf\u00E9\n`)
	// café + newline
*/
package escape
