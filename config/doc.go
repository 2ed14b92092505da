/*
Package config loads the reptor configuration from the optional config.yaml
inside the reptor home directory, with REPTOR_* environment variables taking
precedence over the file. Next to the service endpoint and credentials, the
configuration defines the plugin tier directories and whether community
plugins are enabled.
*/
package config
