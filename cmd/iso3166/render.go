package main

import (
	"fmt"
	"io"

	"iso3166/structure"
)

func render(w io.Writer, n *structure.Node, format, sep string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "yaml":
		data, err = n.ToYAML()
	case "flat":
		for _, p := range n.Flatten(sep) {
			if _, err := fmt.Fprintf(w, "%s=%v\n", p.Key, p.Value); err != nil {
				return err
			}
		}

		return nil
	default:
		data, err = n.ToJSON(true)
		if err == nil {
			data = append(data, '\n')
		}
	}

	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}

	_, err = w.Write(data)

	return err
}
