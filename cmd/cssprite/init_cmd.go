package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:         "init",
	Short:       "Generate a default .cssprite.yaml config file",
	Long:        `Create a .cssprite.yaml configuration file in the current directory with sensible defaults.`,
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cssprite configuration
# Precedence: flags > CSSPRITE_* environment > this file > defaults

verbose: false
workers: 1
check-fresh: false

source:
  path: images/source
  ext: jpg,jpeg,gif,png
  skip-size: 0             # 0 = keep every image
  order: name              # name | natural
  ignore-file: .spriteignore

image:
  path: public/img/sprite.png   # .png | .gif | .jpg
  jpeg-quality: 90

css:
  path: public/css/sprite.css
  image-url: ../img/sprite.png
  namespace: img
  namespace-style: hyphen  # hyphen (img-ok) | concat (imgok)
  default-size: 64
  states: [hover, active, target]
  tag: i
  inline: false
  cache-bust: false
  slug: false

lint:
  paths:
    - "templates/**/*.html"
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true

preview:
  mode: auto               # auto | kitty | iterm | sixel | ansi
  width: 0
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
