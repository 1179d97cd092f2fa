// Package job runs batch translation jobs: it reads a localization table,
// translates every (row, target language) cell through the translation
// client, and writes the completed table to the output path. A job either
// completes with a summary, fails with no output file left behind, or is
// cancelled with no output file left behind.
package job
