package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bjaus/rtfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FORMAT",
		Short: "Print the tokens of a format string as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTokens(cmd.OutOrStdout(), args[0])
		},
	}
}

// tokenView is the printed form of a piece. Argument fields are empty for
// literals.
type tokenView struct {
	Literal   string `yaml:"literal,omitempty"`
	Argument  string `yaml:"argument,omitempty"`
	Fill      string `yaml:"fill,omitempty"`
	Align     string `yaml:"align,omitempty"`
	Flags     string `yaml:"flags,omitempty"`
	Width     string `yaml:"width,omitempty"`
	Precision string `yaml:"precision,omitempty"`
	Kind      string `yaml:"kind,omitempty"`
}

type tokensView struct {
	Tokens []tokenView        `yaml:"tokens"`
	Errors []rtfmt.Diagnostic `yaml:"errors,omitempty"`
}

func writeTokens(w io.Writer, format string) error {
	p := rtfmt.NewParser(format)
	view := tokensView{Tokens: []tokenView{}}
	for piece := range p.Pieces() {
		view.Tokens = append(view.Tokens, viewPiece(piece))
	}
	view.Errors = p.Errors()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return err
	}
	return enc.Close()
}

func viewPiece(piece rtfmt.Piece) tokenView {
	arg := piece.Argument
	if arg == nil {
		return tokenView{Literal: piece.Literal}
	}
	v := tokenView{
		Argument:  viewPosition(arg.Position),
		Align:     arg.Spec.Align.String(),
		Flags:     arg.Spec.Flags.String(),
		Width:     viewCount(arg.Spec.Width),
		Precision: viewCount(arg.Spec.Precision),
		Kind:      arg.Spec.Kind,
	}
	if arg.Spec.Fill != 0 {
		v.Fill = string(arg.Spec.Fill)
	}
	if kind, err := rtfmt.ParseKind(arg.Spec.Kind); err == nil {
		v.Kind = kind.Capability()
	}
	return v
}

func viewPosition(pos rtfmt.Position) string {
	switch pos.Kind {
	case rtfmt.PositionName:
		return "name " + pos.Name
	case rtfmt.PositionIndex:
		return "index " + strconv.Itoa(pos.Index)
	default:
		return "next " + strconv.Itoa(pos.Index)
	}
}

func viewCount(c rtfmt.Count) string {
	switch c.Kind {
	case rtfmt.CountLiteral:
		return strconv.Itoa(c.Value)
	case rtfmt.CountIndex:
		return fmt.Sprintf("argument %d", c.Value)
	case rtfmt.CountName:
		return "argument " + c.Name
	case rtfmt.CountNext:
		return fmt.Sprintf("next argument %d", c.Value)
	default:
		return ""
	}
}
