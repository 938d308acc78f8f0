package category

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/wordhunt/internal/model"
)

//go:embed categories.txt
var embeddedCategories string

// BuiltIn returns the categories shipped with the binary
func BuiltIn() ([]model.Category, error) {
	return Parse(strings.NewReader(embeddedCategories))
}

// Parse reads categories in the "id|name|WORD,WORD,..." line format.
// Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]model.Category, error) {
	var categories []model.Category
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want id|name|words, got %d fields", lineNo, len(fields))
		}

		c := model.Category{
			ID:   model.CategoryID(strings.TrimSpace(fields[0])),
			Name: strings.TrimSpace(fields[1]),
		}
		for _, w := range strings.Split(fields[2], ",") {
			if w = strings.TrimSpace(w); w != "" {
				c.Words = append(c.Words, w)
			}
		}
		if err := Normalize(&c); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		categories = append(categories, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// Normalize upper-cases a category's words and checks they are plain A-Z
func Normalize(c *model.Category) error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", model.ErrInvalidCategory)
	}
	if len(c.Words) == 0 {
		return fmt.Errorf("category %s: %w", c.ID, model.ErrNoWords)
	}
	if c.Name == "" {
		c.Name = string(c.ID)
	}

	seen := make(map[string]struct{}, len(c.Words))
	words := make([]string, 0, len(c.Words))
	for _, w := range c.Words {
		upper := strings.ToUpper(strings.TrimSpace(w))
		if upper == "" || strings.IndexFunc(upper, func(r rune) bool { return r < 'A' || r > 'Z' }) >= 0 {
			return fmt.Errorf("category %s: %w: %q", c.ID, model.ErrInvalidWord, w)
		}
		if _, dup := seen[upper]; dup {
			continue
		}
		seen[upper] = struct{}{}
		words = append(words, upper)
	}
	c.Words = words
	return nil
}
