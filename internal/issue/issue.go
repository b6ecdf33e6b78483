// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CepfileNotFoundId Id = iota + 1
	CepfileParseErrorId
	BuildNotFoundId
	SignerNotFoundId
	SigningFailedId
	CertificateMissingId
	StagingFailedId
	UnknownProductId
	UnknownFamilyId
	HostNotInstalledId
	DebugPortInvalidId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	cepfileNotFoundIssue = &Issue{
		id: CepfileNotFoundId,
		mdMsg: `
# No cepack.cue found!

We searched for a cepack.cue declaration but couldn't find one.

## Search locations (in order of precedence):
1. The path given with --file
2. Current directory

## Things you can try:
- Create a declaration in your current directory:
~~~
$ cepack init
~~~

- Or run from the project root:
~~~
$ cd /path/to/your/extension
$ cepack package
~~~

## Example declaration structure:
~~~cue
description: "My extension bundle"

builds: {
  main: {
    source: "./src"
    bundle: {
      id:      "com.example.tools"
      version: "1.0.0"
    }
    extensions: [{
      id:        "com.example.tools.panel"
      name:      "Tools"
      main_path: "index.html"
    }]
    products: "photoshop"
    families: ["cc2014", "cc2015"]
  }
}
~~~`,
	}

	cepfileParseErrorIssue = &Issue{
		id: CepfileParseErrorId,
		mdMsg: `
# Failed to parse cepack.cue!

Your declaration contains syntax errors or invalid configuration.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- Invalid values for known fields
- Missing required fields (id for extensions, source for builds)

## Things you can try:
- Check the error message above for the specific field path
- Validate your CUE syntax using the cue command-line tool
- Run with verbose mode for more details:
~~~
$ cepack --verbose package
~~~

## Example of a valid build:
~~~cue
builds: {
  main: {
    source: "./src"
    extensions: [{
      id:        "com.example.tools.panel"
      name:      "Tools"
      version:   "1.0.0"
      main_path: "index.html"
    }]
    products: ["photoshop", "illustrator"]
    families: "cc2015"
  }
}
~~~`,
	}

	buildNotFoundIssue = &Issue{
		id: BuildNotFoundId,
		mdMsg: `
# Build not found!

The build you specified is not declared in your cepack.cue.

## Things you can try:
- List the declared builds:
~~~
$ cepack list
~~~

- Check for typos in the build name
- Omit the build argument to package every declared build`,
	}

	signerNotFoundIssue = &Issue{
		id: SignerNotFoundId,
		mdMsg: `
# ZXPSignCmd not found!

Packaging produces signed .zxp archives, which requires Adobe's ZXPSignCmd
tool on your PATH or configured explicitly.

## Things you can try:
- Download ZXPSignCmd from Adobe's CEP resources:
  https://github.com/Adobe-CEP/CEP-Resources

- Put the binary on your PATH, or point cepack at it:
~~~
$ cepack config set signer.path /opt/adobe/ZXPSignCmd
~~~

- Or set it in your cepack.cue packaging block:
~~~cue
packaging: {
  signer: "/opt/adobe/ZXPSignCmd"
}
~~~`,
	}

	signingFailedIssue = &Issue{
		id: SigningFailedId,
		mdMsg: `
# Signing failed!

ZXPSignCmd reported an error while signing the staged bundle.

## Common causes:
- Wrong certificate password
- Expired or malformed certificate file
- Timestamp server unreachable

## Things you can try:
- Run with verbose mode to see the signer's full output:
~~~
$ cepack --verbose package
~~~

- Verify the certificate and password manually:
~~~
$ ZXPSignCmd -verify <archive>.zxp
~~~

- Generate a fresh self-signed certificate for development:
~~~
$ cepack cert --owner "Example Inc"
~~~`,
	}

	certificateMissingIssue = &Issue{
		id: CertificateMissingId,
		mdMsg: `
# Signing certificate missing!

No certificate file was found at the configured path.

## Things you can try:
- Generate a self-signed certificate for development:
~~~
$ cepack cert --owner "Example Inc"
~~~

- Or point the declaration at an existing one:
~~~cue
packaging: {
  certificate: {
    file:     "./certs/release.p12"
    password: "****"
  }
}
~~~`,
	}

	stagingFailedIssue = &Issue{
		id: StagingFailedId,
		mdMsg: `
# Staging failed!

The build's source folder could not be copied into the staging area.

## Common causes:
- Source folder does not exist or is unreadable
- Staging directory is not writable
- Disk full

## Things you can try:
- Check the source path in your cepack.cue
- Point staging at a writable location:
~~~cue
packaging: {
  staging: "./.cepack/staging"
}
~~~`,
	}

	unknownProductIssue = &Issue{
		id: UnknownProductId,
		mdMsg: `
# Unknown product!

A build targets a product key that is not in the host registry.

## Known product keys:
photoshop, illustrator, indesign, incopy, premiere, aftereffects,
prelude, flash, dreamweaver

## Things you can try:
- Check the products list in your cepack.cue for typos
- Product keys are matched case-insensitively, so casing is not the issue`,
	}

	unknownFamilyIssue = &Issue{
		id: UnknownFamilyId,
		mdMsg: `
# Unknown release family!

A build targets a release family that is not in the host registry.

## Known families (oldest first):
cc, cc2014, cc2015

## Things you can try:
- Check the families field in your cepack.cue
- Use a single string for an open-ended minimum:
~~~cue
families: "cc2014"
~~~
- Or a list for an explicit range:
~~~cue
families: ["cc2014", "cc2015"]
~~~`,
	}

	hostNotInstalledIssue = &Issue{
		id: HostNotInstalledId,
		mdMsg: `
# Host application not installed!

The install command could not find the target host application on this
machine.

## Things you can try:
- Verify the product is installed in the default Adobe location
- Pick a different product or family:
~~~
$ cepack install --product illustrator --family cc2015
~~~

- Check which products the build targets:
~~~
$ cepack list
~~~`,
	}

	debugPortInvalidIssue = &Issue{
		id: DebugPortInvalidId,
		mdMsg: `
# Invalid debug port!

Decorated (debug) builds need a base remote-debugging port so each
extension can be reached from a browser.

## Things you can try:
- Set a non-negative base port in the bundle block:
~~~cue
bundle: {
  debug: {
    port: 8088
  }
}
~~~

Each extension in the build gets the base port plus its position, so a
two-extension bundle with port 8088 listens on 8088 and 8089.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the cepack configuration file.

## Configuration file locations:
- Linux: ~/.config/cepack/config.cue
- macOS: ~/Library/Application Support/cepack/config.cue
- Windows: %APPDATA%\cepack\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ cepack config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/cepack/config.cue
~~~

## Example configuration:
~~~cue
signer: {
  path:          "/opt/adobe/ZXPSignCmd"
  timestamp_url: "http://timestamp.digicert.com"
}

ui: {
  color_scheme: "auto"
  verbose:      false
}
~~~`,
	}

	issues = map[Id]*Issue{
		cepfileNotFoundIssue.Id():    cepfileNotFoundIssue,
		cepfileParseErrorIssue.Id():  cepfileParseErrorIssue,
		buildNotFoundIssue.Id():      buildNotFoundIssue,
		signerNotFoundIssue.Id():     signerNotFoundIssue,
		signingFailedIssue.Id():      signingFailedIssue,
		certificateMissingIssue.Id(): certificateMissingIssue,
		stagingFailedIssue.Id():      stagingFailedIssue,
		unknownProductIssue.Id():     unknownProductIssue,
		unknownFamilyIssue.Id():      unknownFamilyIssue,
		hostNotInstalledIssue.Id():   hostNotInstalledIssue,
		debugPortInvalidIssue.Id():   debugPortInvalidIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
