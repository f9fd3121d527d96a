package excel

import (
	"archive/zip"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// emuPerPixel converts OOXML EMU coordinates at the default 96 DPI.
const emuPerPixel = 9525

// Shape describes one drawing object anchored on a worksheet.
type Shape struct {
	Name      string `json:"name"`
	Index     int    `json:"index"`
	Type      string `json:"type"`
	IsPicture bool   `json:"is_picture"`
	Left      int    `json:"left"`
	Top       int    `json:"top"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// ShapeImage is the decoded image payload of a picture shape.
type ShapeImage struct {
	Name   string `json:"name"`
	Index  int    `json:"index"`
	Format string `json:"format"`
	Data   string `json:"data"` // base64-encoded image bytes
}

// drawingShape is the intermediate parse of one anchor child.
type drawingShape struct {
	shape   Shape
	embedID string
}

// ListShapes enumerates the drawing objects of a worksheet in document order.
func ListShapes(path, sheet string) ([]Shape, error) {
	shapes, _, err := sheetShapes(path, sheet)
	if err != nil {
		return nil, opErr("list shapes", path, err)
	}
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.shape
	}
	return out, nil
}

// GetShapeImage returns the base64-encoded image of one picture shape,
// selected by name or, when name is empty, by 0-based index. One of the two
// selectors must be given.
func GetShapeImage(path, sheet, shapeName string, shapeIndex *int) (*ShapeImage, error) {
	if shapeName == "" && shapeIndex == nil {
		return nil, opErr("get shape image", path, ErrMissingSelector)
	}

	shapes, drawingPath, err := sheetShapes(path, sheet)
	if err != nil {
		return nil, opErr("get shape image", path, err)
	}

	var match *drawingShape
	for i := range shapes {
		if shapeName != "" {
			if shapes[i].shape.Name == shapeName {
				match = &shapes[i]
				break
			}
		} else if shapes[i].shape.Index == *shapeIndex {
			match = &shapes[i]
			break
		}
	}
	if match == nil {
		selector := shapeName
		if selector == "" {
			selector = fmt.Sprintf("index %d", *shapeIndex)
		}
		return nil, opErr("get shape image", path, fmt.Errorf("%w: %s", ErrShapeNotFound, selector))
	}
	if !match.shape.IsPicture || match.embedID == "" {
		return nil, opErr("get shape image", path,
			fmt.Errorf("%w: %q is not a picture", ErrShapeNotFound, match.shape.Name))
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, opErr("get shape image", path, err)
	}
	defer r.Close()

	mediaPath, err := resolveEmbedTarget(&r.Reader, drawingPath, match.embedID)
	if err != nil {
		return nil, opErr("get shape image", path, err)
	}
	data, err := readZipEntry(&r.Reader, mediaPath)
	if err != nil {
		return nil, opErr("get shape image", path, err)
	}
	if data == nil {
		return nil, opErr("get shape image", path,
			fmt.Errorf("%w: media entry %q missing", ErrShapeNotFound, mediaPath))
	}

	return &ShapeImage{
		Name:   match.shape.Name,
		Index:  match.shape.Index,
		Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(mediaPath)), "."),
		Data:   base64.StdEncoding.EncodeToString(data),
	}, nil
}

// sheetShapes opens the workbook archive, resolves the sheet's drawing part,
// and parses its anchors. Sheets without a drawing part yield no shapes.
func sheetShapes(path, sheet string) ([]drawingShape, string, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, "", err
	}
	if err := requireSheet(f, sheet); err != nil {
		f.Close()
		return nil, "", err
	}
	f.Close()

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", err
	}
	defer r.Close()

	drawingPath, err := sheetDrawingPath(&r.Reader, sheet)
	if err != nil {
		return nil, "", err
	}
	if drawingPath == "" {
		return nil, "", nil
	}

	drawingXML, err := readZipEntry(&r.Reader, drawingPath)
	if err != nil || drawingXML == nil {
		return nil, "", err
	}

	return parseDrawingShapes(drawingXML), drawingPath, nil
}

// sheetDrawingPath walks workbook.xml and the relationship parts to find the
// drawing XML belonging to a sheet name.
func sheetDrawingPath(r *zip.Reader, sheet string) (string, error) {
	workbookXML, err := readZipEntry(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return "", err
	}

	relID := ""
	decoder := xml.NewDecoder(strings.NewReader(string(workbookXML)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		var name, rID string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "name":
				name = attr.Value
			case "id":
				rID = attr.Value
			}
		}
		if name == sheet {
			relID = rID
			break
		}
	}
	if relID == "" {
		return "", nil
	}

	wbRels, err := readZipEntry(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRels == nil {
		return "", err
	}
	sheetPath := relationshipTarget(wbRels, relID)
	if sheetPath == "" {
		return "", nil
	}
	sheetPath = resolvePartPath(sheetPath, "xl")

	relsPath := strings.Replace(sheetPath, "worksheets/", "worksheets/_rels/", 1) + ".rels"
	sheetRels, err := readZipEntry(r, relsPath)
	if err != nil || sheetRels == nil {
		return "", err
	}

	drawingTarget := relationshipByType(sheetRels, "drawing")
	if drawingTarget == "" {
		return "", nil
	}
	return resolvePartPath(drawingTarget, "xl/drawings"), nil
}

// parseDrawingShapes extracts pictures and plain shapes from drawing XML.
func parseDrawingShapes(data []byte) []drawingShape {
	var shapes []drawingShape

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
			shapes = append(shapes, parseAnchorShapes(decoder)...)
		}
	}

	for i := range shapes {
		shapes[i].shape.Index = i
	}
	return shapes
}

func parseAnchorShapes(decoder *xml.Decoder) []drawingShape {
	var shapes []drawingShape
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "pic":
				if s := parseDrawingObject(decoder, true); s != nil {
					shapes = append(shapes, *s)
				}
				depth--
			case "sp", "cxnSp":
				if s := parseDrawingObject(decoder, false); s != nil {
					shapes = append(shapes, *s)
				}
				depth--
			case "grpSp":
				shapes = append(shapes, parseAnchorShapes(decoder)...)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return shapes
}

// parseDrawingObject reads one pic, sp, or cxnSp element: its non-visual
// name, geometry preset, frame, and for pictures the blip relationship ID.
func parseDrawingObject(decoder *xml.Decoder, isPicture bool) *drawingShape {
	s := drawingShape{shape: Shape{IsPicture: isPicture, Type: "Shape"}}
	if isPicture {
		s.shape.Type = "Picture"
	}

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						s.shape.Name = attr.Value
					}
				}
			case "blip":
				for _, attr := range t.Attr {
					if attr.Name.Local == "embed" {
						s.embedID = attr.Value
					}
				}
			case "prstGeom":
				for _, attr := range t.Attr {
					if attr.Name.Local == "prst" && !isPicture {
						s.shape.Type = attr.Value
					}
				}
			case "xfrm":
				parseShapeFrame(decoder, &s.shape)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return &s
}

func parseShapeFrame(decoder *xml.Decoder, s *Shape) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "off":
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "x":
						s.Left = emuAttrToPixels(attr.Value)
					case "y":
						s.Top = emuAttrToPixels(attr.Value)
					}
				}
			case "ext":
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "cx":
						s.Width = emuAttrToPixels(attr.Value)
					case "cy":
						s.Height = emuAttrToPixels(attr.Value)
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}
}

// resolveEmbedTarget maps a blip relationship ID through the drawing's rels
// part to the media entry path.
func resolveEmbedTarget(r *zip.Reader, drawingPath, embedID string) (string, error) {
	relsPath := strings.Replace(drawingPath, "drawings/", "drawings/_rels/", 1) + ".rels"
	rels, err := readZipEntry(r, relsPath)
	if err != nil {
		return "", err
	}
	if rels == nil {
		return "", fmt.Errorf("drawing relationships %q missing", relsPath)
	}
	target := relationshipTarget(rels, embedID)
	if target == "" {
		return "", fmt.Errorf("image relationship %q missing", embedID)
	}
	return resolvePartPath(target, "xl/drawings"), nil
}

// relationshipTarget returns the Target of the Relationship with the given Id.
func relationshipTarget(data []byte, relID string) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Id":
				id = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if id == relID {
			return target
		}
	}
	return ""
}

// relationshipByType returns the first Relationship Target whose Type
// contains the given keyword.
func relationshipByType(data []byte, keyword string) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var relType, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Type":
				relType = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if strings.Contains(strings.ToLower(relType), keyword) {
			return target
		}
	}
	return ""
}

// resolvePartPath resolves a relationship target relative to its base part
// directory; "../" targets are rooted at xl/.
func resolvePartPath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}

func readZipEntry(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func emuAttrToPixels(v string) int {
	emu, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return int(emu / emuPerPixel)
}
