package gpu

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// KindCounts returns how many records of each kind the buffer holds
func (b *Buffer) KindCounts() map[KindID]int {
	counts := make(map[KindID]int)
	for i := 0; i < b.Len(); i++ {
		counts[KindID(b.Nodes[i*BlockWords+OffsetKind])]++
	}
	return counts
}

// Stats builds a tabular summary of record counts and buffer sizes
func (b *Buffer) Stats() string {
	counts := b.KindCounts()
	kinds := make([]KindID, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Section", "Kind", "Records", "Size"})

	var textures, materials int
	for _, k := range kinds {
		if k.IsTexture() {
			textures += counts[k]
		} else {
			materials += counts[k]
		}
	}

	table.Append([]string{"Textures", "---", strconv.Itoa(textures), fmtWords(textures * BlockWords)})
	for _, k := range kinds {
		if k.IsTexture() {
			table.Append([]string{"", k.String(), strconv.Itoa(counts[k]), fmtWords(counts[k] * BlockWords)})
		}
	}
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Materials", "---", strconv.Itoa(materials), fmtWords(materials * BlockWords)})
	for _, k := range kinds {
		if !k.IsTexture() {
			table.Append([]string{"", k.String(), strconv.Itoa(counts[k]), fmtWords(counts[k] * BlockWords)})
		}
	}
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Pixels", "---", " ", fmtWords(len(b.Pixels))})
	table.Append([]string{"Roots", "---", strconv.Itoa(len(b.Roots)), fmtWords(len(b.Roots))})
	table.SetFooter([]string{"Total", " ", strconv.Itoa(b.Len()), fmtWords(len(b.Nodes) + len(b.Pixels) + len(b.Roots))})

	table.Render()
	return buf.String()
}

// fmtWords formats a count of 32-bit words with a byte/kb/mb unit
func fmtWords(words int) string {
	totalBytes := float64(words * 4)
	if totalBytes < 1e3 {
		return fmt.Sprintf("%d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%.1f mb", totalBytes/1e6)
}
