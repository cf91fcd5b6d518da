package manifest

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/smashah/workspace-updater/pkg/constants"
	"github.com/smashah/workspace-updater/pkg/errors"
	"github.com/smashah/workspace-updater/pkg/verbose"
)

var (
	readFileFunc       = os.ReadFile
	decodeDocumentFunc = decodeDocument
)

// errMultipleDocuments rejects streams that a single-document write would truncate.
var errMultipleDocuments = stderrors.New("multiple YAML documents are not supported")

// Manifest is a decoded workspace manifest.
//
// Fields:
//   - Path: The file the manifest was read from
//   - Document: The full yaml.v3 document node, re-encoded on write
//   - Catalog: Dependency name to version range (or the decoded non-string scalar), in document order
type Manifest struct {
	Path     string
	Document *yaml.Node
	Catalog  *orderedmap.OrderedMap

	catalog *yaml.Node
	// parent and slot locate the catalog value inside the root mapping; set
	// only while that value is an alias still shared with its anchor.
	parent *yaml.Node
	slot   int
}

// Load reads and parses the manifest at path.
//
// Returns:
//   - *Manifest: The decoded manifest
//   - error: The read error, or *errors.ManifestParseError for malformed content
func Load(path string) (*Manifest, error) {
	content, err := readFileFunc(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(path, content)
}

// Parse decodes raw manifest content and extracts its catalog.
//
// It performs the following operations:
//   - Step 1: Decode the content into a single yaml.v3 document node; a
//     second document after "---" is rejected
//   - Step 2: Require a mapping at the document root (an empty document is accepted)
//   - Step 3: Look up the catalog key; absent or null means an empty catalog
//   - Step 4: Decode each catalog value into the ordered map, keeping document order
//
// Parameters:
//   - path: Manifest path, used in errors and kept on the result
//   - content: Raw YAML bytes
//
// Returns:
//   - *Manifest: The decoded manifest with a possibly empty catalog
//   - error: *errors.ManifestParseError when the YAML is malformed or has the wrong shape
func Parse(path string, content []byte) (*Manifest, error) {
	doc, err := decodeDocumentFunc(content)
	if err != nil {
		return nil, &errors.ManifestParseError{Path: path, Err: err}
	}

	m := &Manifest{Path: path, Document: doc, Catalog: orderedmap.New()}

	root := documentRoot(doc)
	if root == nil || isNull(root) {
		return m, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &errors.ManifestParseError{Path: path, Err: stderrors.New("document root must be a mapping")}
	}

	slot := lookupSlot(root, constants.CatalogKey)
	if slot < 0 {
		return m, nil
	}
	node := resolveAlias(root.Content[slot])
	if node == nil || isNull(node) {
		return m, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &errors.ManifestParseError{Path: path, Err: fmt.Errorf("%s must be a mapping", constants.CatalogKey)}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.ShortTag() == mergeTag {
			verbose.Printf("%s: merge key skipped, merged entries are not checked", constants.CatalogKey)
			continue
		}

		var decoded any
		if err := value.Decode(&decoded); err != nil {
			return nil, &errors.ManifestParseError{Path: path, Err: fmt.Errorf("%s.%s: %w", constants.CatalogKey, key.Value, err)}
		}
		m.Catalog.Set(key.Value, decoded)
	}
	m.catalog = node
	if root.Content[slot].Kind == yaml.AliasNode {
		m.parent, m.slot = root, slot
	}

	return m, nil
}

// Set replaces the catalog value of an existing entry.
//
// The ordered map and the YAML node are updated together. Quoting style and
// comments of the original scalar are kept. Unknown names are ignored.
//
// Parameters:
//   - name: Catalog entry to change
//   - value: New version range
//
// Returns:
//   - bool: true if the entry existed and was changed
func (m *Manifest) Set(name, value string) bool {
	if m.catalog == nil {
		return false
	}
	if _, ok := m.Catalog.Get(name); !ok {
		return false
	}
	m.detachCatalog()

	for i := 0; i+1 < len(m.catalog.Content); i += 2 {
		if m.catalog.Content[i].Value != name {
			continue
		}
		m.catalog.Content[i+1] = replaceScalar(m.catalog.Content[i+1], value)
	}
	m.Catalog.Set(name, value)

	return true
}

// Marshal re-encodes the whole document with two-space indentation.
func (m *Manifest) Marshal() ([]byte, error) {
	if documentRoot(m.Document) == nil {
		return nil, stderrors.New("manifest document is empty")
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(m.Document); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// detachCatalog replaces an aliased catalog with its own copy of the anchored
// mapping, so updates never leak into the anchor's other users.
func (m *Manifest) detachCatalog() {
	if m.parent == nil {
		return
	}

	detached := *m.catalog
	detached.Anchor = ""
	detached.Content = append([]*yaml.Node(nil), m.catalog.Content...)
	m.parent.Content[m.slot] = &detached
	m.catalog = &detached
	m.parent = nil
}

// decodeDocument decodes exactly one YAML document. An empty stream yields an
// empty document node.
func decodeDocument(content []byte) (*yaml.Node, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(content))

	doc := &yaml.Node{}
	if err := decoder.Decode(doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return &yaml.Node{}, nil
		}
		return nil, err
	}

	var extra yaml.Node
	switch err := decoder.Decode(&extra); {
	case stderrors.Is(err, io.EOF):
		return doc, nil
	case err != nil:
		return nil, err
	default:
		return nil, errMultipleDocuments
	}
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc == nil {
		return nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return resolveAlias(doc.Content[0])
	}
	if doc.Kind == 0 {
		return nil
	}
	return resolveAlias(doc)
}

const mergeTag = "!!merge"

// lookupSlot returns the index of key's value in mapping, or -1.
func lookupSlot(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i + 1
		}
	}
	return -1
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

// replaceScalar builds the replacement node so that an aliased value is never
// rewritten through its anchor.
func replaceScalar(old *yaml.Node, value string) *yaml.Node {
	style := yaml.Style(0)
	if old.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		style = old.Style & (yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle)
	}

	return &yaml.Node{
		Kind:        yaml.ScalarNode,
		Tag:         "!!str",
		Value:       value,
		Style:       style,
		HeadComment: old.HeadComment,
		LineComment: old.LineComment,
		FootComment: old.FootComment,
	}
}
