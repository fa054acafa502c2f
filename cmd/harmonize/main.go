package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-four-part-harmony/harmony"
	"go-four-part-harmony/internal/config"
	"go-four-part-harmony/music"
	"go-four-part-harmony/render"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "harmonize":
		err = runHarmonize(os.Args[2:])
	case "melody":
		err = runMelody(os.Args[2:])
	case "counterpoint":
		err = runCounterpoint(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: harmonize <harmonize|melody|counterpoint|check|batch> [flags]")
}

func runHarmonize(args []string) error {
	fs := flag.NewFlagSet("harmonize", flag.ExitOnError)
	bassFlag := fs.String("bass", "", "comma-separated MIDI bass notes")
	widthFlag := fs.Int("width", 0, "beam width (default 10)")
	jsonFlag := fs.Bool("json", false, "emit JSON instead of text")
	fs.Parse(args)

	var bass []music.Pitch
	var err error
	if *bassFlag != "" {
		bass, err = parsePitchList(*bassFlag)
	} else {
		bass, err = promptPitchList("Enter bass notes (comma-separated MIDI numbers): ")
	}
	if err != nil {
		return err
	}

	result := harmony.Harmonize(harmony.Request{BassLine: bass, BeamWidth: *widthFlag})
	return printResult(result, *jsonFlag)
}

func runMelody(args []string) error {
	fs := flag.NewFlagSet("melody", flag.ExitOnError)
	melodyFlag := fs.String("melody", "", "comma-separated MIDI melody notes")
	chordsFlag := fs.String("chords", "", "comma-separated chord qualities to try under each note")
	jsonFlag := fs.Bool("json", false, "emit JSON instead of text")
	fs.Parse(args)

	var melody []music.Pitch
	var err error
	if *melodyFlag != "" {
		melody, err = parsePitchList(*melodyFlag)
	} else {
		melody, err = promptPitchList("Enter melody notes (comma-separated MIDI numbers): ")
	}
	if err != nil {
		return err
	}

	var chordTypes []music.ChordQuality
	if *chordsFlag != "" {
		chordTypes, err = config.ChordQualities(strings.Split(*chordsFlag, ","))
		if err != nil {
			return err
		}
	}

	result := harmony.HarmonizeMelody(melody, chordTypes)
	return printResult(result, *jsonFlag)
}

func runCounterpoint(args []string) error {
	fs := flag.NewFlagSet("counterpoint", flag.ExitOnError)
	cfFlag := fs.String("cantus", "", "comma-separated MIDI cantus firmus notes")
	above := fs.Bool("above", true, "write the counterpoint above the cantus firmus")
	species := fs.Int("species", 1, "counterpoint species (only 1 is implemented)")
	jsonFlag := fs.Bool("json", false, "emit JSON instead of text")
	fs.Parse(args)

	var cf []music.Pitch
	var err error
	if *cfFlag != "" {
		cf, err = parsePitchList(*cfFlag)
	} else {
		cf, err = promptPitchList("Enter cantus firmus notes (comma-separated MIDI numbers): ")
	}
	if err != nil {
		return err
	}

	result := harmony.Counterpoint(cf, *above, *species)
	return printResult(result, *jsonFlag)
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	voicesFlag := fs.String("voices", "", "semicolon-separated S,A,T,B groups, e.g. 72,67,64,48;71,67,62,43")
	jsonFlag := fs.Bool("json", false, "emit JSON instead of text")
	fs.Parse(args)

	if *voicesFlag == "" {
		return fmt.Errorf("check requires -voices")
	}
	progression, err := parseVoicings(*voicesFlag)
	if err != nil {
		return err
	}

	report := harmony.CheckErrors(progression)
	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(headingStyle.Render("Errors found:"))
	for _, e := range report.Errors {
		fmt.Printf("  step %d: %s: %s\n", e.Step, e.Type, e.Description)
	}
	text, err := render.Text(report.Corrected)
	if err != nil {
		return err
	}
	fmt.Println(headingStyle.Render("Corrected progression:"))
	fmt.Print(text)
	return nil
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	fileFlag := fs.String("file", "", "path to a batch YAML file")
	fs.Parse(args)

	if *fileFlag == "" {
		return fmt.Errorf("batch requires -file")
	}
	b, err := config.LoadBatch(*fileFlag)
	if err != nil {
		return err
	}

	for _, job := range b.Jobs {
		fmt.Println(headingStyle.Render(fmt.Sprintf("=== %s (%s) ===", job.Name, job.Operation)))
		var result harmony.Result
		switch job.Operation {
		case "harmonize":
			chordTypes, err := config.ChordQualities(job.ChordTypes)
			if err != nil {
				return err
			}
			result = harmony.Harmonize(harmony.Request{
				BassLine:   config.Pitches(job.BassLine),
				ChordTypes: chordTypes,
				BeamWidth:  job.BeamWidth,
			})
		case "melody":
			chordTypes, err := config.ChordQualities(job.ChordTypes)
			if err != nil {
				return err
			}
			result = harmony.HarmonizeMelody(config.Pitches(job.Melody), chordTypes)
		case "counterpoint":
			result = harmony.Counterpoint(config.Pitches(job.Melody), job.Above, job.Species)
		default:
			return fmt.Errorf("batch: unknown operation %q for job %q", job.Operation, job.Name)
		}
		if err := printResult(result, false); err != nil {
			return err
		}
	}
	return nil
}

func printResult(result harmony.Result, asJSON bool) error {
	if !result.Success {
		return result.Err
	}
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	text, err := render.Text(result.Voices)
	if err != nil {
		return err
	}
	fmt.Println(headingStyle.Render("Progression:"))
	fmt.Print(text)
	if result.Explanations != "" {
		fmt.Println(headingStyle.Render("Explanations:"))
		fmt.Print(result.Explanations)
	}
	return nil
}

func parsePitchList(s string) ([]music.Pitch, error) {
	fields := strings.Split(s, ",")
	out := make([]music.Pitch, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid MIDI note %q: %w", f, err)
		}
		out = append(out, music.Pitch(n))
	}
	return out, nil
}

func parseVoicings(s string) ([]music.Voicing, error) {
	groups := strings.Split(s, ";")
	out := make([]music.Voicing, 0, len(groups))
	for _, g := range groups {
		notes, err := parsePitchList(g)
		if err != nil {
			return nil, err
		}
		if len(notes) != 4 {
			return nil, fmt.Errorf("each voicing group needs exactly 4 notes (S,A,T,B), got %d in %q", len(notes), g)
		}
		out = append(out, music.Voicing{S: notes[0], A: notes[1], T: notes[2], B: notes[3]})
	}
	return out, nil
}

func promptPitchList(prompt string) ([]music.Pitch, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("error reading input: %v", err)
	}
	return parsePitchList(strings.TrimSpace(line))
}
