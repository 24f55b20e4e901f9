package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sompyler/sompyler"
	"github.com/sompyler/sompyler/cmd"
	"github.com/sompyler/sompyler/modulation"
	"github.com/sompyler/sompyler/oto"
	"github.com/sompyler/sompyler/shape"
	"github.com/sompyler/sompyler/version"
)

func main() {
	help := flag.Bool("h", false, "Show help.")
	pitch := flag.Float64("f", 0, "Frequency of the tone in Hz. Without it, only the envelope, shape or modulation curve is rendered.")
	length := flag.Float64("l", 1, "Duration of the tone in seconds.")
	stress := flag.Float64("s", 1, "Intensity of the tone.")
	output := flag.String("o", "tone", "Base name of the output files.")
	play := flag.Bool("p", false, "Play the rendered curve.")
	rawOut := flag.Bool("r", false, "Output the curve as .raw file.")
	wavOut := flag.Bool("w", false, "Output the curve as .wav file.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	dump := flag.Bool("d", false, "Print the samples to standard output, one per line (default when no other output is defined).")
	versionFlag := flag.Bool("v", false, "Print version.")
	instrFlags := cmd.InstrumentFlags(flag.CommandLine)
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*play && !*rawOut && !*wavOut {
		*dump = true
	}
	curve, err := renderCurve(instrFlags, *pitch, *length, *stress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	buffer := make(sompyler.AudioBuffer, len(curve))
	for i, v := range curve {
		buffer[i] = float32(v)
	}
	if *dump {
		w := bufio.NewWriter(os.Stdout)
		for _, v := range curve {
			w.WriteString(strconv.FormatFloat(v, 'g', 6, 64))
			w.WriteByte('\n')
		}
		w.Flush()
	}
	if *rawOut {
		if err := write(buffer.Raw, *pcm, *output, ".raw"); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if *wavOut {
		if err := write(buffer.Wav, *pcm, *output, ".wav"); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if *play {
		audioContext, err := oto.NewContext()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
		player, err := audioContext.Play(buffer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not play: %v\n", err)
			os.Exit(1)
		}
		player.Wait()
	}
}

// renderCurve renders a tone when a pitch is given, otherwise a bare
// envelope, a bare shape or a bare amplitude modulation curve.
func renderCurve(f *cmd.Flags, pitch, length, stress float64) ([]float64, error) {
	if length < 0 {
		return nil, fmt.Errorf("negative length %v", length)
	}
	n := int(length * sompyler.SampleRate)
	switch {
	case pitch > 0:
		instr, err := f.Instrument()
		if err != nil {
			return nil, err
		}
		tone, err := instr.Tone(pitch, length, stress)
		if err != nil {
			return nil, err
		}
		ret := make([]float64, len(tone))
		for i, v := range tone {
			ret[i] = float64(v)
		}
		return ret, nil
	case *f.Attack != "" || *f.Tail != "" || *f.Release != "":
		env, err := shape.ParseEnvelope(*f.Attack, *f.Sustain, *f.Tail, *f.Release)
		if err != nil {
			return nil, err
		}
		return env.Render(length, sompyler.SampleRate)
	case *f.Sustain != "":
		s, err := shape.Parse(*f.Sustain)
		if err != nil {
			return nil, err
		}
		return s.Render(n), nil
	case *f.AM != "":
		m, err := modulation.Parse(*f.AM)
		if err != nil {
			return nil, err
		}
		return m.Modulate(modulation.Times(n, sompyler.SampleRate), 0)
	}
	return nil, fmt.Errorf("no clue what to render: give a pitch (-f), a shape (-A, -S, -T, -R) or a modulation (-AM)")
}

func write(encode func(bool) ([]byte, error), pcm bool, name, extension string) error {
	contents, err := encode(pcm)
	if err != nil {
		return fmt.Errorf("could not generate %v file: %w", extension, err)
	}
	if err := os.WriteFile(name+extension, contents, 0644); err != nil {
		return fmt.Errorf("could not write file %v: %w", name+extension, err)
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Sompyler command line utility for rendering a single tone, envelope, shape or modulation curve.\nUsage: %s [flags]\n", os.Args[0])
	flag.PrintDefaults()
}
