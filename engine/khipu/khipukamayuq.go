package khipu

/*
BSD License

Copyright (c) 2017–20, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"golang.org/x/text/unicode/norm"
)

var setupGraphemes sync.Once

// KnotEncode transforms an input text into a khipu.
//
// The text is normalized to NFC and split into grapheme clusters. Line
// feeds separate paragraphs, every space character results in a space knot,
// and runs of other clusters become words. A paragraph without any content
// is represented by a blank-line knot.
func KnotEncode(text io.Reader) *Khipu {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	onGraphemes := grapheme.NewBreaker(1)
	seg := segment.NewSegmenter(onGraphemes)
	seg.Init(bufio.NewReader(norm.NFC.Reader(text)))
	enc := encoder{khipu: NewKhipu()}
	for seg.Next() {
		cluster := seg.Text()
		tracer().Debugf("next grapheme = %q", cluster)
		switch {
		case isLinebreak(cluster):
			enc.endParagraph()
			enc.khipu.AppendKnot(ParBreak())
		case cluster == " ":
			enc.endWord()
			enc.khipu.AppendKnot(Space())
			enc.content = true
		default:
			enc.word = append(enc.word, cluster)
			enc.content = true
		}
	}
	enc.endParagraph()
	tracer().Infof("resulting khipu = %s", enc.khipu)
	return enc.khipu
}

// EncodeString is a shortcut for KnotEncode(strings.NewReader(s)).
func EncodeString(s string) *Khipu {
	return KnotEncode(strings.NewReader(s))
}

type encoder struct {
	khipu   *Khipu
	word    []string // graphemes of the current word
	content bool     // current paragraph is not empty
}

func (enc *encoder) endWord() {
	if len(enc.word) > 0 {
		enc.khipu.AppendKnot(Word(enc.word...))
		enc.word = nil
	}
}

func (enc *encoder) endParagraph() {
	enc.endWord()
	if !enc.content {
		enc.khipu.AppendKnot(BlankLine())
	}
	enc.content = false
}

func isLinebreak(cluster string) bool {
	return cluster == "\n" || cluster == "\r\n" || cluster == "\r"
}
