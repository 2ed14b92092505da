/*
Package reptor is the command line client of a pentest-reporting service. Most
of what the CLI does lives in plugins: small units that are either compiled
into the binary or dropped as scripts into one of several plugin directories.

Plugins are picked up from a fixed sequence of tiers: core, official,
community (only when enabled in the configuration), importers, exporters, and
finally the user's own private plugins. A plugin in a later tier replaces a
plugin with the same name from an earlier tier, so users can always overwrite
the plugins shipped with reptor. The overwritten plugin is remembered for
diagnostic purposes only.

Please see package [github.com/syn-4ck/reptor/plugins] for the plugin loading
sequence and the command registry, and package
[github.com/syn-4ck/reptor/cli] for the extension points of the CLI itself.
*/
package reptor
