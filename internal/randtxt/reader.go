// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package randtxt generates pseudo English text for tests. Words are
// drawn from a list of frequent English words with a Zipf distribution
// and arranged into sentences and lines.
package randtxt

import (
	"math/rand"
	"strings"
)

var words = strings.Fields(`
the of and to a in is it you that he was for on are with as I his they
be at one have this from or had by hot word but what some we can out
other were all there when up use your how said an each she which do
their time if will way about many then them write would like so these
her long make thing see him two has look more day could go come did
number sound no most people my over know water than call first who may
down side been now find any new work part take get place made live where
after back little only round man year came show every good me give our
under name very through just form sentence great think say help low line
differ turn cause much mean before move right boy old too same tell does
set three want air well also play small end put home read hand port large
spell add even land here must big high such follow act why ask men change
went light kind off need house picture try us again animal point mother
world near build self earth father head stand own page should country
found answer school grow study still learn plant cover food sun four
between state keep eye never last let thought city tree cross farm hard
start might story saw far sea draw left late run while press close night
real life few north open seem together next white children begin got walk
example ease paper group always music those both mark often letter until
mile river car feet care second book carry took science eat room friend
began idea fish mountain stop once base hear horse cut sure watch color
face wood main enough plain girl usual young ready above ever red list
though feel talk bird soon body dog family direct pose leave song measure
door product black short numeral class wind question happen complete ship
area half rock order fire south problem piece told knew pass since top
whole king space heard best hour better true during hundred five remember
step early hold west ground interest reach fast verb sing listen six table
travel less morning ten simple several vowel toward war lay against
pattern slow center love person money serve appear road map rain rule
govern pull cold notice voice unit power town fine certain fly fall lead
cry dark machine note wait plan figure star box noun field rest correct
able pound done beauty drive stood contain front teach week final gave
green oh quick develop ocean warm free minute strong special mind behind
clear tail produce fact street inch multiply nothing course stay wheel
full force blue object decide surface deep moon island foot system busy
test record boat common gold possible plane stead dry wonder laugh
thousand ago ran check game shape equate miss brought heat snow tire
bring yes distant fill east paint language among`)

// wcdf is the cumulative distribution of the words.
var wcdf = cdf(len(words), func(i int) prob {
	return prob{words[i], 1.0 / float64(i+1)}
})

// lineLen is the maximum length of a line.
const lineLen = 72

// Reader produces an endless stream of pseudo English text.
type Reader struct {
	rnd *rand.Rand
	// text generated but not yet read
	buf []byte
	col int
	// words left in the current sentence
	left int
}

// NewReader creates a reader using the given random source.
func NewReader(src rand.Source) *Reader {
	return &Reader{rnd: rand.New(src)}
}

// word returns a random word.
func (r *Reader) word() string {
	return wcdf[wcdf.SearchProb(r.rnd.Float64())].s
}

// next appends the next word to the buffer.
func (r *Reader) next() {
	w := r.word()
	start := r.left == 0
	if start {
		r.left = 4 + r.rnd.Intn(12)
		w = strings.ToUpper(w[:1]) + w[1:]
	}
	r.left--
	if r.left == 0 {
		w += "."
	} else if r.rnd.Intn(16) == 0 {
		w += ","
	}
	switch {
	case r.col == 0:
	case r.col+1+len(w) > lineLen:
		r.buf = append(r.buf, '\n')
		r.col = 0
	default:
		r.buf = append(r.buf, ' ')
		r.col++
	}
	r.buf = append(r.buf, w...)
	r.col += len(w)
}

// Read fills p with text. It never returns an error.
func (r *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(r.buf) == 0 {
			r.next()
		}
		k := copy(p[n:], r.buf)
		r.buf = r.buf[k:]
		n += k
	}
	return n, nil
}
