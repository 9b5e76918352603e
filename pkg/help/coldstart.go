package help

const ColdstartYAML = `# wiki-word-freq Quick Start

commands:
  analyze: |
    wiki-word-freq analyze "Machine learning"

  top_20_as_json: |
    wiki-word-freq analyze --top 20 --format json "Category:Machine_learning"

  force_refresh: |
    wiki-word-freq analyze --no-cache "Machine learning"

  list_cache: |
    wiki-word-freq cached

category_names:
  - "The Category: prefix is optional"
  - "Underscores and spaces are interchangeable"
  - "Capitalization variants are tried in order until one has articles"

cache:
  - "One JSON file per category in cache_dir (default ./cache)"
  - "File name is the md5 of the normalized category name"
  - "Records older than 7 days are recomputed"
  - "--no-cache skips reading, the fresh result is still written"

config_file: |
  # wiki-word-freq.yaml
  cache_dir: cache
  cache_ttl: 168h
  timeout: 30s
  workers: 4
  extract_format: plain     # or html
  article_fallback: false
  english_only: false
  stopwords_path: stopwords/english.txt

exit_codes:
  0: "success"
  1: "invalid input or configuration"
  2: "category has no pages or no words"
`
