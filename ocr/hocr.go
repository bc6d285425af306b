package ocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// hOCR classes that mark a line of text.
var lineClasses = []string{"ocr_line", "ocr_caption", "ocr_textfloat", "ocr_header"}

// ParseHOCR extracts one Record per non-empty text line from an hOCR
// document. Line text is the line's words joined by single spaces, NFC
// normalized. Confidence is the mean word x_wconf scaled to [0, 1].
func ParseHOCR(r io.Reader) ([]Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	var records []Record
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, lineClasses...) {
			if rec, ok := lineRecord(n); ok {
				records = append(records, rec)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return records, nil
}

// lineRecord builds a Record from an hOCR line element.
func lineRecord(line *html.Node) (Record, bool) {
	props := parseTitle(getAttr(line, "title"))
	box, ok := parseBBox(props["bbox"])
	if !ok {
		return Record{}, false
	}

	var words []string
	var confSum float64
	var confCount int
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
			word := getTextContent(n)
			if word == "" {
				return
			}
			words = append(words, word)
			if conf, ok := parseNumber(parseTitle(getAttr(n, "title"))["x_wconf"]); ok {
				confSum += conf
				confCount++
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(line)

	text := strings.Join(words, " ")
	if len(words) == 0 {
		text = strings.Join(strings.Fields(getTextContent(line)), " ")
	}
	text = norm.NFC.String(text)
	if text == "" {
		return Record{}, false
	}

	rec := Record{
		Boxes: [][2]int{
			{box[0], box[1]},
			{box[2], box[1]},
			{box[2], box[3]},
			{box[0], box[3]},
		},
		Text: text,
	}
	if confCount > 0 {
		rec.Confident = confSum / float64(confCount) / 100
	}
	return rec, true
}

// parseTitle splits an hOCR title attribute ("bbox 1 2 3 4; x_wconf 91")
// into its properties.
func parseTitle(title string) map[string][]string {
	props := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		props[fields[0]] = fields[1:]
	}
	return props
}

func parseBBox(values []string) ([4]int, bool) {
	var box [4]int
	if len(values) != 4 {
		return box, false
	}
	for i, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return box, false
		}
		box[i] = n
	}
	return box, true
}

// parseNumber parses a single numeric property value.
func parseNumber(values []string) (float64, bool) {
	if len(values) != 1 {
		return 0, false
	}
	f, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func hasClass(n *html.Node, classes ...string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		for _, want := range classes {
			if c == want {
				return true
			}
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func getTextContent(n *html.Node) string {
	var result strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			result.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(result.String())
}
