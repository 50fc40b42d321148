package translate

// HelpText describes the natural-language command surface with examples.
const HelpText = `
AI-Powered Terminal - Natural Language Commands

You can use natural language to interact with the terminal. Here are some examples:

File Operations:
  "create a file named test.txt"
  "make a new folder called documents"
  "delete the file oldfile.txt"
  "copy file1.txt to backup/"
  "move document.pdf to archive/"
  "show me the contents of readme.txt"

Navigation:
  "list all files"
  "go to the documents folder"
  "where am I"
  "show me what's in this directory"

System Information:
  "show me system info"
  "list running processes"
  "check disk usage"
  "show memory usage"

Complex Operations:
  "create a folder called test and move file1.txt into it"
  "find all .txt files"
  "copy all .py files to backup/"
  "find and delete files named temp"

You can also use traditional terminal commands if preferred.
The AI will interpret your natural language and convert it to appropriate commands.
`
