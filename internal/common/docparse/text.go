// internal/common/docparse/text.go
package docparse

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func ExtractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)

	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	extractedText := strings.TrimSpace(textBuilder.String())
	if extractedText == "" {
		return "", fmt.Errorf("no text could be extracted from PDF")
	}

	return extractedText, nil
}

type wordDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    struct {
		Paragraphs []struct {
			Runs []struct {
				Text string `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"body"`
}

func ExtractDOCX(data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX as ZIP: %w", err)
	}

	var documentFile *zip.File
	for _, file := range zipReader.File {
		if file.Name == "word/document.xml" {
			documentFile = file
			break
		}
	}
	if documentFile == nil {
		return "", fmt.Errorf("document.xml not found in DOCX")
	}

	xmlFile, err := documentFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer xmlFile.Close()

	xmlData, err := io.ReadAll(xmlFile)
	if err != nil {
		return "", fmt.Errorf("failed to read document.xml: %w", err)
	}

	var doc wordDocument
	if err := xml.Unmarshal(xmlData, &doc); err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}

	var textBuilder strings.Builder
	for _, para := range doc.Body.Paragraphs {
		for _, run := range para.Runs {
			textBuilder.WriteString(run.Text)
		}
		textBuilder.WriteString("\n")
	}

	extractedText := strings.TrimSpace(textBuilder.String())
	if extractedText == "" {
		return "", fmt.Errorf("no text could be extracted from DOCX")
	}

	return extractedText, nil
}

func ExtractTXT(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty text file")
	}

	text, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text file: %w", err)
	}

	text = cleanText(text)
	if text == "" {
		return "", fmt.Errorf("no text could be extracted from file")
	}

	return text, nil
}

// decodeText honours UTF-8/UTF-16 BOMs and falls back to Windows-1252 for non UTF-8 input.
func decodeText(data []byte) (string, error) {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), nil
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), data)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), data)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	if decoded, err := decodeWith(charmap.Windows1252.NewDecoder(), data); err == nil {
		return decoded, nil
	}
	return decodeWith(charmap.ISO8859_1.NewDecoder(), data)
}

func decodeWith(t transform.Transformer, data []byte) (string, error) {
	decoded, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")

	lines := strings.Split(text, "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
