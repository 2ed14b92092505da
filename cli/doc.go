/*
Package cli defines plugin extension points for the reptor command. These are
compile-time extension points of the CLI itself, as opposed to the reptor
plugins that become commands (see package
[github.com/syn-4ck/reptor/plugins]).

# Extension Points

The following plugin “group” extension points are available (and also invoked in
this general order):

  - [SetupCLI]: for adding (sub) commands and CLI args to the (in [cobra]
    parlance) “root” command.
  - [CommandExamples]: for adding (more) examples to particular commands,
    including commands provided by reptor plugins. These plugin functions are
    invoked after all [SetupCLI] plugins have been called and all reptor
    plugins have been loaded, so that all commands have been registered by the
    time the examples should be extended with even more examples.
  - [BeforeCommand]: for checking and doing things just before the command runs.
  - [SemVer]: for overriding the reported version.

The plugin mechanism used for these extension points is compile-time only and
allows so-called plugins to register functions in what is termed “groups”. The
registered functions then can be iterated over. For more details about the
plugin mechanism, please refer to [go-plugger].

[cobra]: https://github.com/spf13/cobra
[go-plugger]: https://github.com/thediveo/go-plugger
*/
package cli
