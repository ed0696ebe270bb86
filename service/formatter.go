package service

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simtree-go/simtree/internal/detector"
	"github.com/simtree-go/simtree/internal/extract"
)

// Format is a report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatOptions controls diagnostic code-slice printing.
type FormatOptions struct {
	Print    bool
	PrintAll bool
}

// methodDTO is the serializable projection of an extract.Method for
// JSON/YAML/CSV output; the full AST and fingerprint stay internal.
type methodDTO struct {
	FullName  string `json:"fullName" yaml:"fullName"`
	FilePath  string `json:"filePath" yaml:"filePath"`
	StartLine int    `json:"startLine" yaml:"startLine"`
	EndLine   int    `json:"endLine" yaml:"endLine"`
	LineCount int    `json:"lineCount" yaml:"lineCount"`
}

type entryDTO struct {
	Method     methodDTO `json:"method" yaml:"method"`
	Similarity float64   `json:"similarity" yaml:"similarity"`
	Impact     float64   `json:"impact" yaml:"impact"`
	CloneType  string    `json:"cloneType" yaml:"cloneType"`
}

type groupDTO struct {
	Representative methodDTO  `json:"representative" yaml:"representative"`
	Entries        []entryDTO `json:"entries" yaml:"entries"`
	TotalImpact    float64    `json:"totalImpact" yaml:"totalImpact"`
}

type reportDTO struct {
	Groups        []groupDTO `json:"groups" yaml:"groups"`
	FilesAnalyzed int        `json:"filesAnalyzed" yaml:"filesAnalyzed"`
	MethodsFound  int        `json:"methodsFound" yaml:"methodsFound"`
	LinesAnalyzed int        `json:"linesAnalyzed" yaml:"linesAnalyzed"`
}

func toMethodDTO(m *extract.Method) methodDTO {
	return methodDTO{
		FullName:  m.FullName,
		FilePath:  m.FilePath,
		StartLine: m.StartLine,
		EndLine:   m.EndLine,
		LineCount: m.LineCount,
	}
}

func toReportDTO(report *Report) reportDTO {
	dto := reportDTO{
		FilesAnalyzed: report.FilesAnalyzed,
		MethodsFound:  report.MethodsFound,
		LinesAnalyzed: report.LinesAnalyzed,
	}
	for _, g := range report.Groups {
		gd := groupDTO{Representative: toMethodDTO(g.Representative), TotalImpact: g.TotalImpact}
		for _, e := range g.Entries {
			gd.Entries = append(gd.Entries, entryDTO{
				Method:     toMethodDTO(e.Method),
				Similarity: e.Similarity,
				Impact:     e.Impact,
				CloneType:  detector.ClassifyCloneType(e.Similarity).String(),
			})
		}
		dto.Groups = append(dto.Groups, gd)
	}
	return dto
}

// WriteReport renders report in the given format, matching spec.md §6's
// textual layout for FormatText: a header with total impact, a
// representative line, one line per duplicate with similarity percent and
// impact, optional code slices, and a final summary line.
func WriteReport(report *Report, format Format, opts FormatOptions, writer io.Writer) error {
	switch format {
	case FormatText, "":
		return writeText(report, opts, writer)
	case FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(toReportDTO(report))
	case FormatYAML:
		encoder := yaml.NewEncoder(writer)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(toReportDTO(report))
	case FormatCSV:
		return writeCSV(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeText(report *Report, opts FormatOptions, writer io.Writer) error {
	if len(report.Groups) == 0 {
		fmt.Fprintln(writer, "No duplicates detected.")
		return nil
	}

	totalMethods := 0
	for i, group := range report.Groups {
		fmt.Fprintf(writer, "Group %d (total impact %.1f):\n", i+1, group.TotalImpact)
		rep := group.Representative
		fmt.Fprintf(writer, "  %s:%d | L%d-%d %s\n", rep.FilePath, rep.StartLine, rep.StartLine, rep.EndLine, rep.FullName)
		totalMethods++

		if opts.PrintAll {
			printSlice(writer, rep)
		}

		for _, entry := range group.Entries {
			m := entry.Method
			fmt.Fprintf(writer, "  - %s:%d | L%d-%d %s (similarity %.1f%%, impact %.1f, %s)\n",
				m.FilePath, m.StartLine, m.StartLine, m.EndLine, m.FullName,
				entry.Similarity*100, entry.Impact, detector.ClassifyCloneType(entry.Similarity))
			totalMethods++
			if opts.Print || opts.PrintAll {
				printSlice(writer, m)
			}
		}
		fmt.Fprintln(writer)
	}

	fmt.Fprintf(writer, "%d groups, %d methods, %d lines analyzed\n", len(report.Groups), totalMethods, report.LinesAnalyzed)
	return nil
}

func printSlice(writer io.Writer, m *extract.Method) {
	f, err := os.Open(m.FilePath)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if line < m.StartLine {
			continue
		}
		if line > m.EndLine {
			break
		}
		fmt.Fprintf(writer, "    %4d | %s\n", line, scanner.Text())
	}
}

func writeCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	header := []string{
		"group", "role", "file", "start_line", "end_line", "full_name",
		"similarity", "impact", "clone_type", "group_total_impact",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for gi, group := range report.Groups {
		rep := group.Representative
		record := []string{
			fmt.Sprintf("%d", gi+1), "representative",
			rep.FilePath, fmt.Sprintf("%d", rep.StartLine), fmt.Sprintf("%d", rep.EndLine), rep.FullName,
			"", "", "", fmt.Sprintf("%.6f", group.TotalImpact),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
		for _, entry := range group.Entries {
			m := entry.Method
			record := []string{
				fmt.Sprintf("%d", gi+1), "duplicate",
				m.FilePath, fmt.Sprintf("%d", m.StartLine), fmt.Sprintf("%d", m.EndLine), m.FullName,
				fmt.Sprintf("%.6f", entry.Similarity), fmt.Sprintf("%.6f", entry.Impact),
				detector.ClassifyCloneType(entry.Similarity).String(), "",
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("writing CSV record: %w", err)
			}
		}
	}
	return nil
}
